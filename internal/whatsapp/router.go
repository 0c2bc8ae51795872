package whatsapp

import (
	"wildquest/internal/shared/config"
	"wildquest/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupWhatsAppRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	// Public route - the booking form hands off to WhatsApp
	public := router.Group("/whatsapp")
	{
		public.POST("/requests", controller.CaptureRequest)
	}

	// Staff routes - follow up, convert or close
	staff := router.Group("/admin/whatsapp/requests")
	staff.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireStaff())
	{
		staff.GET("", controller.ListRequests)
		staff.GET("/:requestId", controller.GetRequest)
		staff.POST("/:requestId/contact", controller.MarkContacted)
		staff.POST("/:requestId/close", controller.CloseRequest)
		staff.POST("/:requestId/convert", controller.ConvertRequest)
	}
}
