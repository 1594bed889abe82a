package http

import (
	"github.com/gin-gonic/gin"

	"github.com/stylist/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/facets", handler.ListFacets)
		v1.GET("/products/filter/:facet", handler.FilterProducts)
		v1.POST("/recommendations", handler.Recommend)
		v1.POST("/outfits", handler.AssembleOutfit)
		v1.POST("/advice", handler.GetAdvice)

		catalog := v1.Group("/catalog")
		{
			catalog.POST("/reload", handler.ReloadCatalog)
			catalog.POST("/import", handler.ImportCatalog)
			catalog.POST("/enrich", handler.EnrichCatalog)
		}
	}

	return router
}
