package domain

import (
	"context"
	"time"
)

// ProductRepository persists catalog products and ingredient-product
// linkages. Both operations are idempotent: repeated calls with the
// same arguments write at most one row.
type ProductRepository interface {
	// UpsertProduct returns the id of the row matching (Name, Brand),
	// inserting it first if absent. Fields of an existing row are
	// never overwritten.
	UpsertProduct(ctx context.Context, p *CatalogProduct) (int64, error)

	// LinkIngredientToProduct records the ingredient-product pair,
	// skipping the write when the pair already exists.
	LinkIngredientToProduct(ctx context.Context, ingredientID, productID int64) error
}

// RecipeRepository provides recipe, ingredient and shopping-list reads
// and the writes needed to create recipes and per-user lists.
type RecipeRepository interface {
	GetRecipe(ctx context.Context, id int64) (*Recipe, error)
	ListRecipes(ctx context.Context) ([]Recipe, error)
	AddRecipe(ctx context.Context, r *NewRecipe) (int64, error)
	IngredientsForRecipe(ctx context.Context, recipeID int64) ([]Ingredient, error)
	ShoppingListForRecipe(ctx context.Context, recipeID int64) ([]ShoppingListEntry, error)
	CreateShoppingList(ctx context.Context, userID, recipeID int64) (string, error)
	ShoppingListForUser(ctx context.Context, userID int64) ([]ShoppingListEntry, error)
	DeleteShoppingList(ctx context.Context, userID int64) error
}

// FactRepository persists resolved nutrition facts keyed by name.
type FactRepository interface {
	SaveFact(ctx context.Context, fact *NutritionFact) (int64, error)
	FactByName(ctx context.Context, name string) (*NutritionFact, error)
}

// CatalogClient searches the external grocery catalog. An empty result
// slice with a nil error means the provider had no matches.
type CatalogClient interface {
	SearchProducts(ctx context.Context, term, locationID string, limit int) ([]CatalogProduct, error)
}

// NutritionClient searches the FoodData Central API. foundationOnly
// restricts the search to Foundation-typed entries.
type NutritionClient interface {
	SearchFoods(ctx context.Context, query string, foundationOnly bool) (*FDCSearchResponse, error)
}

// FactCache caches resolved nutrition facts with a TTL.
type FactCache interface {
	Get(ctx context.Context, key string) (*NutritionFact, error)
	Set(ctx context.Context, key string, fact *NutritionFact, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
