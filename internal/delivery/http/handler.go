package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/smartshelf/backend/internal/domain"
)

// Resolver runs the ingredient resolution pipeline for one recipe.
type Resolver interface {
	ResolveRecipe(ctx context.Context, recipeID int64) (*domain.RecipeResolutionResult, error)
}

// ListBuilder assembles the priced shopping list for a recipe.
type ListBuilder interface {
	BuildList(ctx context.Context, recipeID int64) ([]domain.ShoppingListEntry, decimal.Decimal, error)
}

// NutritionLookup resolves an ingredient name to its macronutrients.
type NutritionLookup interface {
	LookupFact(ctx context.Context, ingredient string) (*domain.NutritionFact, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver  Resolver
	assembler ListBuilder
	nutrition NutritionLookup
	recipes   domain.RecipeRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(resolver Resolver, assembler ListBuilder, nutrition NutritionLookup, recipes domain.RecipeRepository) *Handler {
	return &Handler{
		resolver:  resolver,
		assembler: assembler,
		nutrition: nutrition,
		recipes:   recipes,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "smartshelf-backend",
		"version": "1.0.0",
	})
}

// CreateRecipe stores a recipe with its ingredients
func (h *Handler) CreateRecipe(c *gin.Context) {
	var payload domain.NewRecipe
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.recipes.AddRecipe(c.Request.Context(), &payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipeId": id})
}

// ListRecipes returns all stored recipes
func (h *Handler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns a single recipe by id
func (h *Handler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// ResolveRecipe runs the ingredient resolution pipeline and returns the
// priced shopping list plus the ingredients that could not be priced.
func (h *Handler) ResolveRecipe(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.resolver.ResolveRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetShoppingList returns the already-resolved shopping list for a recipe
func (h *Handler) GetShoppingList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, total, err := h.assembler.BuildList(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"shoppingList": entries,
		"totalCost":    total,
	})
}

// nutritionSearchRequest is the nutrition search payload
type nutritionSearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// SearchNutrition handles nutrition fact lookups
func (h *Handler) SearchNutrition(c *gin.Context) {
	var payload nutritionSearchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fact, err := h.nutrition.LookupFact(c.Request.Context(), payload.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fact)
}

// CreateUserShoppingList snapshots a recipe's linkages as a user list
func (h *Handler) CreateUserShoppingList(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload struct {
		RecipeID int64 `json:"recipeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listID, err := h.recipes.CreateShoppingList(c.Request.Context(), userID, payload.RecipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"listId": listID})
}

// GetUserShoppingList returns a user's saved shopping list entries
func (h *Handler) GetUserShoppingList(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.recipes.ShoppingListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shoppingList": entries})
}

// DeleteUserShoppingList clears a user's saved shopping list
func (h *Handler) DeleteUserShoppingList(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.recipes.DeleteShoppingList(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses a numeric path parameter, writing a 400 on failure
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return 0, false
	}
	return id, true
}

// respondError maps domain errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
