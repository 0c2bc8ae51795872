package payments

import (
	"wildquest/internal/shared/config"
	"wildquest/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	// Public routes - customers pay and gateways call back
	public := router.Group("/payments")
	{
		public.POST("", controller.InitiatePayment)
		public.GET("/:paymentId", controller.GetPayment)
		public.POST("/:paymentId/callback", controller.GatewayCallback)
	}

	// Staff routes - balances and refunds
	staff := router.Group("/admin")
	staff.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireStaff())
	{
		staff.GET("/bookings/:bookingId/payments", controller.GetBookingPaymentSummary)
		staff.POST("/payments/:paymentId/refund", controller.RefundPayment)
	}
}
