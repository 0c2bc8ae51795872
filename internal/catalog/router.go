package catalog

import (
	"wildquest/internal/shared/config"
	"wildquest/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCatalogRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	// Public routes - customers browse the catalog without an account
	public := router.Group("/catalog")
	{
		public.GET("/categories", controller.GetCategories)
		public.GET("/locations", controller.GetLocations)
		public.GET("/features", controller.GetFeatures)
	}

	// Admin routes - back-office catalog management
	admin := router.Group("/admin/catalog")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.POST("/categories", controller.CreateCategory)
		admin.DELETE("/categories/:categoryId", controller.DeactivateCategory)
		admin.POST("/locations", controller.CreateLocation)
		admin.POST("/features", controller.CreateFeature)
	}

	// Staff routes - feature assignment on events
	staff := router.Group("/admin/events/:eventId/features")
	staff.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireStaff())
	{
		staff.GET("", controller.GetEventFeatures)
		staff.POST("", controller.AssignFeature)
		staff.DELETE("/:featureId", controller.RemoveFeatureAssignment)
	}
}
