package reviews

import (
	"wildquest/internal/shared/config"
	"wildquest/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReviewRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	// Public routes - read approved reviews, submit new ones
	public := router.Group("")
	{
		public.POST("/reviews", controller.SubmitReview)
		public.GET("/events/:eventId/reviews", controller.GetEventReviews)
		public.GET("/events/:eventId/rating", controller.GetEventRating)
	}

	// Admin routes - moderation queue
	admin := router.Group("/admin/reviews")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.GET("", controller.ListReviews)
		admin.POST("/:reviewId/approve", controller.ApproveReview)
		admin.POST("/:reviewId/reject", controller.RejectReview)
	}
}
