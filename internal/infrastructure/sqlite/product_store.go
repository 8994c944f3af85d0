package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/smartshelf/backend/internal/domain"
)

// UpsertProduct returns the id of the product row matching the
// (name, brand) key, inserting one if absent. Fields of an existing row
// are never overwritten: first write wins. The UNIQUE(name, brand)
// index backstops the check-then-insert under concurrent resolution of
// the same ingredient name.
func (s *Store) UpsertProduct(ctx context.Context, p *domain.CatalogProduct) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT product_id FROM CatalogProduct WHERE name = ? AND brand = ?`,
		p.Name, p.Brand,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: looking up product %q/%q: %v", domain.ErrStorage, p.Name, p.Brand, err)
	}

	// DO NOTHING keeps a concurrent winner's row intact.
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO CatalogProduct (name, description, price, brand, category)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name, brand) DO NOTHING`,
		p.Name, p.Description, p.Price.String(), p.Brand, p.Category,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: inserting product %q/%q: %v", domain.ErrStorage, p.Name, p.Brand, err)
	}

	// Reselect covers both our insert and a concurrent one.
	err = s.db.QueryRowContext(ctx,
		`SELECT product_id FROM CatalogProduct WHERE name = ? AND brand = ?`,
		p.Name, p.Brand,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: reselecting product %q/%q: %v", domain.ErrStorage, p.Name, p.Brand, err)
	}
	return id, nil
}

// LinkIngredientToProduct records the ingredient-product linkage.
// An existing pair is detected before any write; INSERT OR IGNORE and
// the UNIQUE(ingredient_id, product_id) index make the operation safe
// to repeat across pipeline retries.
func (s *Store) LinkIngredientToProduct(ctx context.Context, ingredientID, productID int64) error {
	var itemID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT item_id FROM GroceryItem WHERE ingredient_id = ? AND product_id = ?`,
		ingredientID, productID,
	).Scan(&itemID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: looking up linkage %d->%d: %v", domain.ErrStorage, ingredientID, productID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO GroceryItem (ingredient_id, product_id) VALUES (?, ?)`,
		ingredientID, productID,
	)
	if err != nil {
		return fmt.Errorf("%w: inserting linkage %d->%d: %v", domain.ErrStorage, ingredientID, productID, err)
	}
	return nil
}
