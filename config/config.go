package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Kroger    KrogerConfig
	Nutrition NutritionConfig
	Cache     CacheConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// KrogerConfig holds catalog provider configuration
type KrogerConfig struct {
	ClientID             string        `mapstructure:"client_id"`
	ClientSecret         string        `mapstructure:"client_secret"`
	BaseURL              string        `mapstructure:"base_url"`
	Scope                string        `mapstructure:"scope"`
	LocationID           string        `mapstructure:"location_id"`
	DailyQuota           int           `mapstructure:"daily_quota"`
	TokenMargin          time.Duration `mapstructure:"token_margin"`
	SearchLimit          int           `mapstructure:"search_limit"`
	StopOnQuotaExhausted bool          `mapstructure:"stop_on_quota_exhausted"`
}

// NutritionConfig holds FoodData Central API configuration
type NutritionConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// DatabaseConfig holds persistence configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/smartshelf/")

	v.SetEnvPrefix("SMARTSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults are enough.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog provider defaults. Credentials default to empty so viper
	// knows the keys and AutomaticEnv can fill them; validate() rejects
	// the empty values.
	v.SetDefault("kroger.client_id", "")
	v.SetDefault("kroger.client_secret", "")
	v.SetDefault("kroger.base_url", "https://api-ce.kroger.com/v1")
	v.SetDefault("kroger.scope", "product.compact")
	v.SetDefault("kroger.location_id", "70100465")
	v.SetDefault("kroger.daily_quota", 10000)
	v.SetDefault("kroger.token_margin", "60s")
	v.SetDefault("kroger.search_limit", 1)
	v.SetDefault("kroger.stop_on_quota_exhausted", false)

	// Nutrition provider defaults
	v.SetDefault("nutrition.api_key", "")
	v.SetDefault("nutrition.base_url", "https://api.nal.usda.gov/fdc")

	// Cache defaults
	v.SetDefault("cache.ttl", "720h") // 30 days

	// Database defaults
	v.SetDefault("database.path", "smartshelf.db")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Kroger.ClientID == "" || config.Kroger.ClientSecret == "" {
		return fmt.Errorf("Kroger API credentials are required (set SMARTSHELF_KROGER_CLIENT_ID and SMARTSHELF_KROGER_CLIENT_SECRET)")
	}

	if config.Nutrition.APIKey == "" {
		return fmt.Errorf("nutrition API key is required (set SMARTSHELF_NUTRITION_API_KEY)")
	}

	if config.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}

	if config.Kroger.DailyQuota <= 0 {
		return fmt.Errorf("kroger daily quota must be positive, got: %d", config.Kroger.DailyQuota)
	}

	return nil
}
