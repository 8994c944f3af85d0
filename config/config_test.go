package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("SMARTSHELF_SERVER_PORT")
		os.Unsetenv("SMARTSHELF_SERVER_ENVIRONMENT")
		os.Unsetenv("SMARTSHELF_KROGER_CLIENT_ID")
		os.Unsetenv("SMARTSHELF_KROGER_CLIENT_SECRET")
		os.Unsetenv("SMARTSHELF_KROGER_BASE_URL")
		os.Unsetenv("SMARTSHELF_KROGER_LOCATION_ID")
		os.Unsetenv("SMARTSHELF_KROGER_DAILY_QUOTA")
		os.Unsetenv("SMARTSHELF_KROGER_SEARCH_LIMIT")
		os.Unsetenv("SMARTSHELF_KROGER_STOP_ON_QUOTA_EXHAUSTED")
		os.Unsetenv("SMARTSHELF_NUTRITION_API_KEY")
		os.Unsetenv("SMARTSHELF_NUTRITION_BASE_URL")
		os.Unsetenv("SMARTSHELF_CACHE_TTL")
		os.Unsetenv("SMARTSHELF_DATABASE_PATH")
		os.Unsetenv("SMARTSHELF_RATELIMIT_PER_IP")
	}

	setRequired := func() {
		os.Setenv("SMARTSHELF_KROGER_CLIENT_ID", "test-client")
		os.Setenv("SMARTSHELF_KROGER_CLIENT_SECRET", "test-secret")
		os.Setenv("SMARTSHELF_NUTRITION_API_KEY", "test-key")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Required secrets come from the environment
		if cfg.Kroger.ClientID != "test-client" {
			t.Errorf("Kroger.ClientID = %s, want test-client", cfg.Kroger.ClientID)
		}
		if cfg.Kroger.ClientSecret != "test-secret" {
			t.Errorf("Kroger.ClientSecret = %s, want test-secret", cfg.Kroger.ClientSecret)
		}
		if cfg.Nutrition.APIKey != "test-key" {
			t.Errorf("Nutrition.APIKey = %s, want test-key", cfg.Nutrition.APIKey)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Kroger.BaseURL != "https://api-ce.kroger.com/v1" {
			t.Errorf("Kroger.BaseURL = %s, want https://api-ce.kroger.com/v1", cfg.Kroger.BaseURL)
		}
		if cfg.Kroger.Scope != "product.compact" {
			t.Errorf("Kroger.Scope = %s, want product.compact", cfg.Kroger.Scope)
		}
		if cfg.Kroger.DailyQuota != 10000 {
			t.Errorf("Kroger.DailyQuota = %d, want 10000", cfg.Kroger.DailyQuota)
		}
		if cfg.Kroger.TokenMargin != 60*time.Second {
			t.Errorf("Kroger.TokenMargin = %v, want 60s", cfg.Kroger.TokenMargin)
		}
		if cfg.Kroger.SearchLimit != 1 {
			t.Errorf("Kroger.SearchLimit = %d, want 1", cfg.Kroger.SearchLimit)
		}
		if cfg.Kroger.StopOnQuotaExhausted {
			t.Error("Kroger.StopOnQuotaExhausted = true, want false by default")
		}
		if cfg.Nutrition.BaseURL != "https://api.nal.usda.gov/fdc" {
			t.Errorf("Nutrition.BaseURL = %s, want https://api.nal.usda.gov/fdc", cfg.Nutrition.BaseURL)
		}
		if cfg.Cache.TTL != 720*time.Hour {
			t.Errorf("Cache.TTL = %v, want 720h", cfg.Cache.TTL)
		}
		if cfg.Database.Path != "smartshelf.db" {
			t.Errorf("Database.Path = %s, want smartshelf.db", cfg.Database.Path)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		os.Setenv("SMARTSHELF_SERVER_PORT", "9090")
		os.Setenv("SMARTSHELF_SERVER_ENVIRONMENT", "production")
		os.Setenv("SMARTSHELF_KROGER_BASE_URL", "https://api.kroger.com/v1")
		os.Setenv("SMARTSHELF_KROGER_LOCATION_ID", "01400943")
		os.Setenv("SMARTSHELF_KROGER_DAILY_QUOTA", "5000")
		os.Setenv("SMARTSHELF_KROGER_SEARCH_LIMIT", "5")
		os.Setenv("SMARTSHELF_KROGER_STOP_ON_QUOTA_EXHAUSTED", "true")
		os.Setenv("SMARTSHELF_NUTRITION_BASE_URL", "https://custom.api.com")
		os.Setenv("SMARTSHELF_CACHE_TTL", "24h")
		os.Setenv("SMARTSHELF_DATABASE_PATH", "/tmp/test.db")
		os.Setenv("SMARTSHELF_RATELIMIT_PER_IP", "200")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Kroger.ClientID != "test-client" {
			t.Errorf("Kroger.ClientID = %s, want test-client", cfg.Kroger.ClientID)
		}
		if cfg.Kroger.BaseURL != "https://api.kroger.com/v1" {
			t.Errorf("Kroger.BaseURL = %s, want https://api.kroger.com/v1", cfg.Kroger.BaseURL)
		}
		if cfg.Kroger.LocationID != "01400943" {
			t.Errorf("Kroger.LocationID = %s, want 01400943", cfg.Kroger.LocationID)
		}
		if cfg.Kroger.DailyQuota != 5000 {
			t.Errorf("Kroger.DailyQuota = %d, want 5000", cfg.Kroger.DailyQuota)
		}
		if cfg.Kroger.SearchLimit != 5 {
			t.Errorf("Kroger.SearchLimit = %d, want 5", cfg.Kroger.SearchLimit)
		}
		if !cfg.Kroger.StopOnQuotaExhausted {
			t.Error("Kroger.StopOnQuotaExhausted = false, want true")
		}
		if cfg.Nutrition.BaseURL != "https://custom.api.com" {
			t.Errorf("Nutrition.BaseURL = %s, want https://custom.api.com", cfg.Nutrition.BaseURL)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.Database.Path != "/tmp/test.db" {
			t.Errorf("Database.Path = %s, want /tmp/test.db", cfg.Database.Path)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
	})

	t.Run("fails validation when catalog credentials are missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SMARTSHELF_NUTRITION_API_KEY", "test-key")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for missing Kroger credentials")
		}
	})

	t.Run("fails validation when nutrition API key is missing", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SMARTSHELF_KROGER_CLIENT_ID", "test-client")
		os.Setenv("SMARTSHELF_KROGER_CLIENT_SECRET", "test-secret")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for missing nutrition API key")
		}
	})

	t.Run("fails validation for non-positive daily quota", func(t *testing.T) {
		cleanupEnv()
		setRequired()
		os.Setenv("SMARTSHELF_KROGER_DAILY_QUOTA", "0")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for zero daily quota")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Kroger: KrogerConfig{
				ClientID:     "id",
				ClientSecret: "secret",
				DailyQuota:   10000,
			},
			Nutrition: NutritionConfig{APIKey: "key"},
			Database:  DatabaseConfig{Path: "smartshelf.db"},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when client secret is empty", func(t *testing.T) {
		cfg := valid()
		cfg.Kroger.ClientSecret = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty client secret")
		}
	})

	t.Run("fails when nutrition API key is empty", func(t *testing.T) {
		cfg := valid()
		cfg.Nutrition.APIKey = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty API key")
		}
	})

	t.Run("fails when database path is empty", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Path = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty database path")
		}
	})

	t.Run("fails for negative daily quota", func(t *testing.T) {
		cfg := valid()
		cfg.Kroger.DailyQuota = -1
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for negative quota")
		}
	})
}
