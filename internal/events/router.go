package events

import (
	"wildquest/internal/shared/config"
	"wildquest/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	// Public routes - customers browse without an account
	public := router.Group("/events")
	{
		public.GET("", controller.GetAllEvents)
		public.GET("/upcoming", controller.GetUpcomingEvents)
		public.GET("/:eventId", controller.GetEvent)
		public.GET("/slug/:slug", controller.GetEventBySlug)
		public.GET("/:eventId/tiers", controller.GetEventTiers)
	}

	// Staff routes - event management
	staff := router.Group("/admin/events")
	staff.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireStaff())
	{
		staff.POST("", controller.CreateEvent)
		staff.PUT("/:eventId", controller.UpdateEvent)
		staff.POST("/:eventId/publish", controller.PublishEvent)
		staff.POST("/:eventId/suspend", controller.SuspendEvent)
		staff.POST("/:eventId/cancel", controller.CancelEvent)
		staff.POST("/:eventId/tiers", controller.AddPricingTier)
		staff.DELETE("/tiers/:tierId", controller.RemoveTier)
	}

	// Admin routes - deletion and analytics
	admin := router.Group("/admin/events")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.DELETE("/:eventId", controller.DeleteEvent)
		admin.GET("/analytics", controller.GetAllEventAnalytics)
		admin.GET("/:eventId/analytics", controller.GetEventAnalytics)
	}
}
