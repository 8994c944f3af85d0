package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/smartshelf/backend/internal/domain"
)

// SaveFact stores a nutrition fact keyed by name. Facts are resolved
// once and never refreshed, so an existing row wins.
func (s *Store) SaveFact(ctx context.Context, fact *domain.NutritionFact) (int64, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO NutritionFact (name, calories, protein, fat, carbs)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO NOTHING`,
		fact.Name, fact.Calories, fact.Protein, fact.Fat, fact.Carbs,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: inserting nutrition fact %q: %v", domain.ErrStorage, fact.Name, err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		`SELECT nutrition_id FROM NutritionFact WHERE name = ?`, fact.Name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: reselecting nutrition fact %q: %v", domain.ErrStorage, fact.Name, err)
	}
	return id, nil
}

// FactByName fetches a stored nutrition fact by ingredient name.
func (s *Store) FactByName(ctx context.Context, name string) (*domain.NutritionFact, error) {
	var fact domain.NutritionFact
	err := s.db.QueryRowContext(ctx,
		`SELECT nutrition_id, name, calories, protein, fat, carbs
		 FROM NutritionFact WHERE name = ?`, name,
	).Scan(&fact.ID, &fact.Name, &fact.Calories, &fact.Protein, &fact.Fat, &fact.Carbs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: nutrition fact %q", domain.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching nutrition fact %q: %v", domain.ErrStorage, name, err)
	}
	return &fact, nil
}
