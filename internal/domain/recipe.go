package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is a stored recipe. Ingredients are created with the recipe
// and never mutated afterwards.
type Recipe struct {
	ID              int64  `json:"recipeId"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	CuisineType     string `json:"cuisineType"`
	CookingTime     int    `json:"cookingTime"`
	DifficultyLevel int    `json:"difficultyLevel"`
}

// Ingredient is a single recipe ingredient. Many ingredients may share
// a name across recipes; identity is ID.
type Ingredient struct {
	ID       int64   `json:"ingredientId"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"measurementUnit"`
	RecipeID int64   `json:"recipeId"`
}

// NewRecipe is the payload for creating a recipe with its ingredients.
type NewRecipe struct {
	Name            string          `json:"name" binding:"required"`
	Category        string          `json:"category"`
	CuisineType     string          `json:"cuisineType"`
	CookingTime     int             `json:"cookingTime"`
	DifficultyLevel int             `json:"difficultyLevel"`
	Ingredients     []NewIngredient `json:"ingredients" binding:"required"`
}

// NewIngredient is one ingredient line in a NewRecipe payload.
type NewIngredient struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"measurementUnit"`
}

// ShoppingListEntry is the read-only join of an ingredient, its linkage
// and the linked catalog product.
type ShoppingListEntry struct {
	IngredientName string          `json:"ingredientName"`
	Quantity       float64         `json:"quantity"`
	Unit           string          `json:"measurementUnit"`
	ProductName    string          `json:"productName"`
	Brand          string          `json:"brand"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category"`
}

// RecipeResolutionResult is the outcome of resolving one recipe.
// It is constructed fresh per request and never persisted.
type RecipeResolutionResult struct {
	Recipe                Recipe              `json:"recipe"`
	ShoppingList          []ShoppingListEntry `json:"shoppingList"`
	TotalCost             decimal.Decimal     `json:"totalCost"`
	ProcessedAt           time.Time           `json:"processedAt"`
	UnresolvedIngredients []string            `json:"unresolvedIngredients"`
}
