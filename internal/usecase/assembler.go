package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smartshelf/backend/internal/domain"
)

// ShoppingListAssembler joins a recipe's ingredients with their
// persisted linkages and products to produce the priced list.
type ShoppingListAssembler struct {
	recipes domain.RecipeRepository
}

// NewShoppingListAssembler creates an assembler over the given store.
func NewShoppingListAssembler(recipes domain.RecipeRepository) *ShoppingListAssembler {
	return &ShoppingListAssembler{recipes: recipes}
}

// BuildList returns the priced shopping list for a recipe and the exact
// decimal sum of the entry prices. Unlinked ingredients are excluded
// here; the resolver reports them as unresolved.
func (a *ShoppingListAssembler) BuildList(ctx context.Context, recipeID int64) ([]domain.ShoppingListEntry, decimal.Decimal, error) {
	entries, err := a.recipes.ShoppingListForRecipe(ctx, recipeID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Price)
	}

	return entries, total, nil
}
