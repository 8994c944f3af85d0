package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/smartshelf/backend/internal/domain"
)

// errNoCandidates marks an ingredient the provider had no products for.
// It never leaves the resolver; the ingredient is reported unresolved.
var errNoCandidates = errors.New("no catalog candidates")

// ResolverConfig holds configuration for the ingredient resolver.
type ResolverConfig struct {
	// LocationID scopes catalog searches to one store location.
	LocationID string
	// SearchLimit is the candidate count requested per ingredient.
	SearchLimit int
	// StopOnQuotaExhausted stops calling the catalog for the remaining
	// ingredients once the daily quota is confirmed exhausted, instead
	// of burning a failing call per ingredient.
	StopOnQuotaExhausted bool
}

// IngredientResolver orchestrates the per-recipe resolution loop:
// ingredient -> catalog product -> persisted linkage. One ingredient's
// failure never aborts resolution of the rest.
type IngredientResolver struct {
	recipes   domain.RecipeRepository
	products  domain.ProductRepository
	catalog   domain.CatalogClient
	assembler *ShoppingListAssembler

	locationID           string
	searchLimit          int
	stopOnQuotaExhausted bool
}

// NewIngredientResolver creates a resolver with its collaborators.
func NewIngredientResolver(
	recipes domain.RecipeRepository,
	products domain.ProductRepository,
	catalog domain.CatalogClient,
	assembler *ShoppingListAssembler,
	config ResolverConfig,
) *IngredientResolver {
	limit := config.SearchLimit
	if limit <= 0 {
		limit = 1
	}

	return &IngredientResolver{
		recipes:              recipes,
		products:             products,
		catalog:              catalog,
		assembler:            assembler,
		locationID:           config.LocationID,
		searchLimit:          limit,
		stopOnQuotaExhausted: config.StopOnQuotaExhausted,
	}
}

// ResolveRecipe resolves every ingredient of the recipe to a priced
// catalog product and returns the assembled list. A missing recipe
// aborts the call; every per-ingredient failure is logged, recorded in
// UnresolvedIngredients and skipped.
func (r *IngredientResolver) ResolveRecipe(ctx context.Context, recipeID int64) (*domain.RecipeResolutionResult, error) {
	recipe, err := r.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	ingredients, err := r.recipes.IngredientsForRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	var unresolved []string
	quotaExhausted := false
	for _, ingredient := range ingredients {
		if ctx.Err() != nil {
			// Deadline hit: no more external calls, the rest count as
			// unresolved.
			unresolved = append(unresolved, ingredient.Name)
			continue
		}
		if quotaExhausted && r.stopOnQuotaExhausted {
			unresolved = append(unresolved, ingredient.Name)
			continue
		}

		if err := r.resolveIngredient(ctx, ingredient); err != nil {
			log.Printf("[RESOLVER] Ingredient %q unresolved: %v", ingredient.Name, err)
			unresolved = append(unresolved, ingredient.Name)
			if errors.Is(err, domain.ErrRateLimited) {
				quotaExhausted = true
			}
		}
	}

	// The final read must still produce the partial list when the
	// deadline expired mid-loop.
	entries, total, err := r.assembler.BuildList(context.WithoutCancel(ctx), recipeID)
	if err != nil {
		return nil, err
	}

	return &domain.RecipeResolutionResult{
		Recipe:                *recipe,
		ShoppingList:          entries,
		TotalCost:             total,
		ProcessedAt:           time.Now(),
		UnresolvedIngredients: unresolved,
	}, nil
}

// resolveIngredient searches the catalog for one ingredient, upserts
// the best-ranked candidate and links it. Re-resolving an already
// linked ingredient is a no-op at the store layer.
func (r *IngredientResolver) resolveIngredient(ctx context.Context, ingredient domain.Ingredient) error {
	candidates, err := r.catalog.SearchProducts(ctx, ingredient.Name, r.locationID, r.searchLimit)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w for %q", errNoCandidates, ingredient.Name)
	}

	product := candidates[0]
	productID, err := r.products.UpsertProduct(ctx, &product)
	if err != nil {
		return err
	}

	return r.products.LinkIngredientToProduct(ctx, ingredient.ID, productID)
}
