package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/smartshelf/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

// openTestStore opens a store backed by a temp file that is cleaned up
// with the test.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

// seedRecipe inserts a recipe with the given ingredient names and
// returns the recipe id plus the stored ingredients.
func seedRecipe(t *testing.T, store *Store, name string, ingredientNames ...string) (int64, []domain.Ingredient) {
	t.Helper()
	ctx := context.Background()

	newRecipe := &domain.NewRecipe{Name: name, Category: "Main-Dish"}
	for _, ing := range ingredientNames {
		newRecipe.Ingredients = append(newRecipe.Ingredients, domain.NewIngredient{
			Name: ing, Quantity: 1, Unit: "cup",
		})
	}

	recipeID, err := store.AddRecipe(ctx, newRecipe)
	require.NoError(t, err)

	ingredients, err := store.IngredientsForRecipe(ctx, recipeID)
	require.NoError(t, err)
	require.Len(t, ingredients, len(ingredientNames))

	return recipeID, ingredients
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
