package http

import (
	"github.com/gin-gonic/gin"
	"github.com/smartshelf/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if cfg.RateLimit.PerIP > 0 {
		router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		recipes := v1.Group("/recipes")
		{
			recipes.POST("", handler.CreateRecipe)
			recipes.GET("", handler.ListRecipes)
			recipes.GET("/:id", handler.GetRecipe)
			recipes.POST("/:id/resolve", handler.ResolveRecipe)
			recipes.GET("/:id/shopping-list", handler.GetShoppingList)
		}

		nutrition := v1.Group("/nutrition")
		{
			nutrition.POST("/search", handler.SearchNutrition)
		}

		users := v1.Group("/users")
		{
			users.POST("/:id/shopping-list", handler.CreateUserShoppingList)
			users.GET("/:id/shopping-list", handler.GetUserShoppingList)
			users.DELETE("/:id/shopping-list", handler.DeleteUserShoppingList)
		}
	}

	return router
}
