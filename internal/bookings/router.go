package bookings

import (
	"wildquest/internal/shared/config"
	"wildquest/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	// Public routes - customers book and look up by reference
	public := router.Group("/bookings")
	{
		public.POST("", controller.CreateBooking)
		public.GET("/:bookingId", controller.GetBooking)
	}

	// Staff routes - back-office lifecycle management
	staff := router.Group("/admin/bookings")
	staff.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireStaff())
	{
		staff.GET("", controller.ListBookings)
		staff.GET("/:bookingId", controller.GetBooking)
		staff.POST("/:bookingId/confirm", controller.ConfirmBooking)
		staff.POST("/:bookingId/paid", controller.MarkPaid)
		staff.POST("/:bookingId/complete", controller.CompleteBooking)
		staff.POST("/:bookingId/cancel", controller.CancelBooking)
	}
}
