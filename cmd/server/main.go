package main

import (
	"fmt"
	"log"
	"os"

	"github.com/smartshelf/backend/config"
	httpDelivery "github.com/smartshelf/backend/internal/delivery/http"
	"github.com/smartshelf/backend/internal/infrastructure/cache"
	"github.com/smartshelf/backend/internal/infrastructure/fdc"
	"github.com/smartshelf/backend/internal/infrastructure/kroger"
	"github.com/smartshelf/backend/internal/infrastructure/sqlite"
	"github.com/smartshelf/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SmartShelf Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Database: %s", cfg.Database.Path)

	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	// Catalog provider stack: one shared token manager and budget per
	// process, never per-worker copies.
	tokens := kroger.NewTokenManager(
		cfg.Kroger.BaseURL,
		cfg.Kroger.ClientID,
		cfg.Kroger.ClientSecret,
		cfg.Kroger.Scope,
		cfg.Kroger.TokenMargin,
	)
	budget := kroger.NewBudget(cfg.Kroger.DailyQuota)
	catalog := kroger.NewClient(cfg.Kroger.BaseURL, tokens, budget)
	log.Printf("Catalog API configured: %s (location: %s, daily quota: %d)",
		cfg.Kroger.BaseURL, cfg.Kroger.LocationID, cfg.Kroger.DailyQuota)

	nutritionClient := fdc.NewClient(cfg.Nutrition.APIKey, cfg.Nutrition.BaseURL)
	if cfg.Nutrition.APIKey != "" {
		log.Printf("Nutrition API configured: %s", cfg.Nutrition.BaseURL)
	}

	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	assembler := usecase.NewShoppingListAssembler(store)
	resolver := usecase.NewIngredientResolver(store, store, catalog, assembler, usecase.ResolverConfig{
		LocationID:           cfg.Kroger.LocationID,
		SearchLimit:          cfg.Kroger.SearchLimit,
		StopOnQuotaExhausted: cfg.Kroger.StopOnQuotaExhausted,
	})
	nutritionService := usecase.NewNutritionService(memoryCache, nutritionClient, store, usecase.NutritionServiceConfig{
		CacheTTL: cfg.Cache.TTL,
	})

	handler := httpDelivery.NewHandler(resolver, assembler, nutritionService, store)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
