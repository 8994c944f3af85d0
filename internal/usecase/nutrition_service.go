package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/smartshelf/backend/internal/domain"
	"github.com/smartshelf/backend/internal/infrastructure/fdc"
)

// Package-level compiled regex patterns for cache key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// foundationDataType is the FDC data type preferred for raw ingredients
const foundationDataType = "Foundation"

// NutritionServiceConfig holds configuration for the nutrition service
type NutritionServiceConfig struct {
	CacheTTL time.Duration
}

// NutritionService resolves an ingredient name to its macronutrients,
// with a memory cache in front of the durable fact store and the FDC
// API behind both.
type NutritionService struct {
	cache    domain.FactCache
	client   domain.NutritionClient
	facts    domain.FactRepository
	cacheTTL time.Duration
}

// NewNutritionService creates a nutrition service with dependencies
func NewNutritionService(
	cache domain.FactCache,
	client domain.NutritionClient,
	facts domain.FactRepository,
	config NutritionServiceConfig,
) *NutritionService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 720 * time.Hour // Default 30 days
	}

	return &NutritionService{
		cache:    cache,
		client:   client,
		facts:    facts,
		cacheTTL: cacheTTL,
	}
}

// LookupFact returns the nutrition fact for an ingredient name.
// Flow: check cache -> check fact store -> search FDC -> persist -> cache.
// An ingredient FDC knows nothing about yields a zero-valued fact named
// "Not Found" rather than an error.
func (s *NutritionService) LookupFact(ctx context.Context, ingredient string) (*domain.NutritionFact, error) {
	if strings.TrimSpace(ingredient) == "" {
		return nil, domain.ErrInvalidRequest
	}

	key := factCacheKey(ingredient)

	if fact, err := s.cache.Get(ctx, key); err == nil && fact != nil {
		return fact, nil
	}

	if fact, err := s.facts.FactByName(ctx, ingredient); err == nil {
		if cacheErr := s.cache.Set(ctx, key, fact, s.cacheTTL); cacheErr != nil {
			log.Printf("[NUTRITION] Failed to cache fact for %q: %v", ingredient, cacheErr)
		}
		return fact, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	food, err := s.searchFood(ctx, ingredient)
	if err != nil {
		return nil, err
	}
	if food == nil {
		// FDC knows nothing about this ingredient. Report that rather
		// than failing; transient lookups must not poison the store.
		return &domain.NutritionFact{Name: "Not Found"}, nil
	}

	fact := fdc.MapFact(ingredient, food)
	id, err := s.facts.SaveFact(ctx, fact)
	if err != nil {
		log.Printf("[NUTRITION] Failed to persist fact for %q: %v", ingredient, err)
	} else {
		fact.ID = id
	}

	if err := s.cache.Set(ctx, key, fact, s.cacheTTL); err != nil {
		log.Printf("[NUTRITION] Failed to cache fact for %q: %v", ingredient, err)
	}

	return fact, nil
}

// searchFood finds the FDC food for an ingredient: the first
// Foundation-typed entry of the filtered search, else the first entry
// of an unfiltered retry, else nil.
func (s *NutritionService) searchFood(ctx context.Context, ingredient string) (*domain.FDCFood, error) {
	resp, err := s.client.SearchFoods(ctx, ingredient, true)
	if err != nil {
		return nil, err
	}
	for i := range resp.Foods {
		if resp.Foods[i].DataType == foundationDataType {
			return &resp.Foods[i], nil
		}
	}

	resp, err = s.client.SearchFoods(ctx, ingredient, false)
	if err != nil {
		return nil, err
	}
	if len(resp.Foods) == 0 {
		return nil, nil
	}
	return &resp.Foods[0], nil
}

// factCacheKey creates a normalized cache key from an ingredient name.
// Format: "nutrition:{normalized_name}"
func factCacheKey(ingredient string) string {
	normalized := strings.ToLower(ingredient)
	normalized = nonAlphanumericRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return fmt.Sprintf("nutrition:%s", strings.TrimSpace(normalized))
}
