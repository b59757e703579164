// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homewise/planner-backend/internal/catalog"
	"github.com/homewise/planner-backend/internal/config"
	"github.com/homewise/planner-backend/internal/handlers"
	"github.com/homewise/planner-backend/internal/llm"
	"github.com/homewise/planner-backend/internal/middleware"
	"github.com/homewise/planner-backend/internal/services"
)

func Initialize(cat *catalog.Catalog, client llm.Client, cfg *config.Config) *gin.Engine {
	// Initialize services
	plannerService := services.NewPlannerService(cat, client, cfg)

	// Initialize handlers
	planHandler := handlers.NewPlanHandler(plannerService, cfg)
	catalogHandler := handlers.NewCatalogHandler(plannerService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.LanguageMiddleware(cfg.Planner.DefaultLanguage))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		plan := v1.Group("/plan")
		plan.Use(middleware.PlanRateLimit())
		{
			plan.POST("", planHandler.GeneratePlan)
			plan.POST("/stream", planHandler.GeneratePlanStream)
		}

		v1.GET("/catalog", catalogHandler.GetCatalog)
	}

	return r
}
