package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartshelf/backend/internal/domain"
)

// GetRecipe fetches one recipe by id.
func (s *Store) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	var r domain.Recipe
	err := s.db.QueryRowContext(ctx,
		`SELECT recipe_id, name, category, cuisine_type, cooking_time, difficulty_level
		 FROM Recipe WHERE recipe_id = ?`, id,
	).Scan(&r.ID, &r.Name, &r.Category, &r.CuisineType, &r.CookingTime, &r.DifficultyLevel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: recipe %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching recipe %d: %v", domain.ErrStorage, id, err)
	}
	return &r, nil
}

// ListRecipes returns all stored recipes.
func (s *Store) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recipe_id, name, category, cuisine_type, cooking_time, difficulty_level FROM Recipe`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing recipes: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	var recipes []domain.Recipe
	for rows.Next() {
		var r domain.Recipe
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.CuisineType, &r.CookingTime, &r.DifficultyLevel); err != nil {
			return nil, fmt.Errorf("%w: scanning recipe: %v", domain.ErrStorage, err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing recipes: %v", domain.ErrStorage, err)
	}
	return recipes, nil
}

// AddRecipe inserts a recipe and its ingredient rows in one transaction.
// Ingredients are immutable once created.
func (s *Store) AddRecipe(ctx context.Context, r *domain.NewRecipe) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: beginning transaction: %v", domain.ErrStorage, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO Recipe (name, category, cuisine_type, cooking_time, difficulty_level)
		 VALUES (?, ?, ?, ?, ?)`,
		r.Name, r.Category, r.CuisineType, r.CookingTime, r.DifficultyLevel,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: inserting recipe %q: %v", domain.ErrStorage, r.Name, err)
	}
	recipeID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: recipe id for %q: %v", domain.ErrStorage, r.Name, err)
	}

	for _, ing := range r.Ingredients {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO Ingredient (name, quantity, measurement_unit, recipe_id)
			 VALUES (?, ?, ?, ?)`,
			ing.Name, ing.Quantity, ing.Unit, recipeID,
		); err != nil {
			return 0, fmt.Errorf("%w: inserting ingredient %q: %v", domain.ErrStorage, ing.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: committing recipe %q: %v", domain.ErrStorage, r.Name, err)
	}
	return recipeID, nil
}

// IngredientsForRecipe returns the recipe's ingredient rows.
func (s *Store) IngredientsForRecipe(ctx context.Context, recipeID int64) ([]domain.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ingredient_id, name, quantity, measurement_unit, recipe_id
		 FROM Ingredient WHERE recipe_id = ?`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching ingredients for recipe %d: %v", domain.ErrStorage, recipeID, err)
	}
	defer rows.Close()

	var ingredients []domain.Ingredient
	for rows.Next() {
		var ing domain.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Quantity, &ing.Unit, &ing.RecipeID); err != nil {
			return nil, fmt.Errorf("%w: scanning ingredient: %v", domain.ErrStorage, err)
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: fetching ingredients for recipe %d: %v", domain.ErrStorage, recipeID, err)
	}
	return ingredients, nil
}

// ShoppingListForRecipe joins the recipe's ingredients against their
// linkages and linked products. Ingredients with no linkage are
// excluded; the resolver reports those separately.
func (s *Store) ShoppingListForRecipe(ctx context.Context, recipeID int64) ([]domain.ShoppingListEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT
		     i.name, i.quantity, i.measurement_unit,
		     cp.name, cp.brand, cp.price, cp.category
		 FROM Ingredient i
		 JOIN GroceryItem gi ON i.ingredient_id = gi.ingredient_id
		 JOIN CatalogProduct cp ON gi.product_id = cp.product_id
		 WHERE i.recipe_id = ?`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching shopping list for recipe %d: %v", domain.ErrStorage, recipeID, err)
	}
	defer rows.Close()
	return scanShoppingList(rows)
}

// CreateShoppingList snapshots the recipe's current linkages as a
// per-user list and returns the generated list id.
func (s *Store) CreateShoppingList(ctx context.Context, userID, recipeID int64) (string, error) {
	listID := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ShoppingList (list_id, user_id, item_id, created_date)
		 SELECT ?, ?, gi.item_id, date('now')
		 FROM GroceryItem gi
		 JOIN Ingredient i ON gi.ingredient_id = i.ingredient_id
		 WHERE i.recipe_id = ?`,
		listID, userID, recipeID,
	)
	if err != nil {
		return "", fmt.Errorf("%w: creating shopping list for user %d: %v", domain.ErrStorage, userID, err)
	}
	return listID, nil
}

// ShoppingListForUser returns all saved list entries for a user.
func (s *Store) ShoppingListForUser(ctx context.Context, userID int64) ([]domain.ShoppingListEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT
		     i.name, i.quantity, i.measurement_unit,
		     cp.name, cp.brand, cp.price, cp.category
		 FROM ShoppingList sl
		 JOIN GroceryItem gi ON sl.item_id = gi.item_id
		 JOIN Ingredient i ON i.ingredient_id = gi.ingredient_id
		 JOIN CatalogProduct cp ON cp.product_id = gi.product_id
		 WHERE sl.user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching shopping list for user %d: %v", domain.ErrStorage, userID, err)
	}
	defer rows.Close()
	return scanShoppingList(rows)
}

// DeleteShoppingList removes all saved list entries for a user.
func (s *Store) DeleteShoppingList(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM ShoppingList WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("%w: deleting shopping list for user %d: %v", domain.ErrStorage, userID, err)
	}
	return nil
}

// scanShoppingList scans joined shopping-list rows, parsing the stored
// decimal price text.
func scanShoppingList(rows *sql.Rows) ([]domain.ShoppingListEntry, error) {
	var entries []domain.ShoppingListEntry
	for rows.Next() {
		var e domain.ShoppingListEntry
		var price string
		if err := rows.Scan(&e.IngredientName, &e.Quantity, &e.Unit, &e.ProductName, &e.Brand, &price, &e.Category); err != nil {
			return nil, fmt.Errorf("%w: scanning shopping list entry: %v", domain.ErrStorage, err)
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing stored price %q: %v", domain.ErrStorage, price, err)
		}
		e.Price = p
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanning shopping list: %v", domain.ErrStorage, err)
	}
	return entries, nil
}
