package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/smartshelf/backend/internal/domain"
)

// mockRecipeRepo is a mock implementation of domain.RecipeRepository
type mockRecipeRepo struct {
	recipes     map[int64]*domain.Recipe
	ingredients map[int64][]domain.Ingredient
	listFn      func(recipeID int64) []domain.ShoppingListEntry
	listErr     error
}

func newMockRecipeRepo() *mockRecipeRepo {
	return &mockRecipeRepo{
		recipes:     make(map[int64]*domain.Recipe),
		ingredients: make(map[int64][]domain.Ingredient),
	}
}

func (m *mockRecipeRepo) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	recipe, ok := m.recipes[id]
	if !ok {
		return nil, fmt.Errorf("%w: recipe %d", domain.ErrNotFound, id)
	}
	return recipe, nil
}

func (m *mockRecipeRepo) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	var out []domain.Recipe
	for _, r := range m.recipes {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockRecipeRepo) AddRecipe(ctx context.Context, r *domain.NewRecipe) (int64, error) {
	return 0, nil
}

func (m *mockRecipeRepo) IngredientsForRecipe(ctx context.Context, recipeID int64) ([]domain.Ingredient, error) {
	return m.ingredients[recipeID], nil
}

func (m *mockRecipeRepo) ShoppingListForRecipe(ctx context.Context, recipeID int64) ([]domain.ShoppingListEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if m.listFn != nil {
		return m.listFn(recipeID), nil
	}
	return nil, nil
}

func (m *mockRecipeRepo) CreateShoppingList(ctx context.Context, userID, recipeID int64) (string, error) {
	return "list-1", nil
}

func (m *mockRecipeRepo) ShoppingListForUser(ctx context.Context, userID int64) ([]domain.ShoppingListEntry, error) {
	return nil, nil
}

func (m *mockRecipeRepo) DeleteShoppingList(ctx context.Context, userID int64) error {
	return nil
}

// mockProductRepo is a mock implementation of domain.ProductRepository
type mockProductRepo struct {
	nextID    int64
	products  map[string]int64 // "name|brand" -> id
	links     map[string]bool  // "ingredientID|productID"
	linked    map[int64]int64  // ingredientID -> productID
	upsertErr error
	linkErr   error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{
		products: make(map[string]int64),
		links:    make(map[string]bool),
		linked:   make(map[int64]int64),
	}
}

func (m *mockProductRepo) UpsertProduct(ctx context.Context, p *domain.CatalogProduct) (int64, error) {
	if m.upsertErr != nil {
		return 0, m.upsertErr
	}
	key := p.Name + "|" + p.Brand
	if id, ok := m.products[key]; ok {
		return id, nil
	}
	m.nextID++
	m.products[key] = m.nextID
	return m.nextID, nil
}

func (m *mockProductRepo) LinkIngredientToProduct(ctx context.Context, ingredientID, productID int64) error {
	if m.linkErr != nil {
		return m.linkErr
	}
	m.links[fmt.Sprintf("%d|%d", ingredientID, productID)] = true
	m.linked[ingredientID] = productID
	return nil
}

// mockCatalog is a mock implementation of domain.CatalogClient
type mockCatalog struct {
	results map[string][]domain.CatalogProduct
	errs    map[string]error
	err     error // returned for every term when set
	calls   int
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		results: make(map[string][]domain.CatalogProduct),
		errs:    make(map[string]error),
	}
}

func (m *mockCatalog) SearchProducts(ctx context.Context, term, locationID string, limit int) ([]domain.CatalogProduct, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if err, ok := m.errs[term]; ok {
		return nil, err
	}
	return m.results[term], nil
}

// mockFactCache is a mock implementation of domain.FactCache
type mockFactCache struct {
	data    map[string]*domain.NutritionFact
	getErr  error
	setErr  error
	setHits int
}

func newMockFactCache() *mockFactCache {
	return &mockFactCache{data: make(map[string]*domain.NutritionFact)}
}

func (m *mockFactCache) Get(ctx context.Context, key string) (*domain.NutritionFact, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if fact, ok := m.data[key]; ok {
		return fact, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *mockFactCache) Set(ctx context.Context, key string, fact *domain.NutritionFact, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.setHits++
	m.data[key] = fact
	return nil
}

func (m *mockFactCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *mockFactCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// mockNutritionClient is a mock implementation of domain.NutritionClient
type mockNutritionClient struct {
	filtered   *domain.FDCSearchResponse
	unfiltered *domain.FDCSearchResponse
	err        error
	calls      int
}

func (m *mockNutritionClient) SearchFoods(ctx context.Context, query string, foundationOnly bool) (*domain.FDCSearchResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if foundationOnly {
		return m.filtered, nil
	}
	return m.unfiltered, nil
}

// mockFactRepo is a mock implementation of domain.FactRepository
type mockFactRepo struct {
	facts   map[string]*domain.NutritionFact
	saveErr error
	saved   int
}

func newMockFactRepo() *mockFactRepo {
	return &mockFactRepo{facts: make(map[string]*domain.NutritionFact)}
}

func (m *mockFactRepo) SaveFact(ctx context.Context, fact *domain.NutritionFact) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	m.saved++
	if existing, ok := m.facts[fact.Name]; ok {
		return existing.ID, nil
	}
	stored := *fact
	stored.ID = int64(len(m.facts) + 1)
	m.facts[fact.Name] = &stored
	return stored.ID, nil
}

func (m *mockFactRepo) FactByName(ctx context.Context, name string) (*domain.NutritionFact, error) {
	if fact, ok := m.facts[name]; ok {
		return fact, nil
	}
	return nil, fmt.Errorf("%w: nutrition fact %q", domain.ErrNotFound, name)
}
