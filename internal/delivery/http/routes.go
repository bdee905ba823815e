package http

import (
	"github.com/gin-gonic/gin"

	"github.com/feirapp/backend/config"
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

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("/search", handler.SearchProducts)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("", handler.CatalogStatus)
			catalog.POST("/reload", handler.ReloadCatalog)
		}

		recipe := v1.Group("/recipe")
		{
			recipe.GET("", handler.GetRecipe)
			recipe.POST("/items", handler.AppendLineItem)
			recipe.PATCH("/items/:index", handler.UpdateLineItem)
			recipe.DELETE("/items/:index", handler.RemoveLineItem)
		}
	}

	return router
}
