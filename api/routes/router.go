package routes

import (
	"net/http"
	"time"

	"wildquest/internal/auth"
	"wildquest/internal/bookings"
	"wildquest/internal/capacity"
	"wildquest/internal/catalog"
	"wildquest/internal/events"
	"wildquest/internal/notifications"
	"wildquest/internal/payments"
	"wildquest/internal/pricing"
	"wildquest/internal/reviews"
	"wildquest/internal/shared/config"
	"wildquest/internal/shared/database"
	"wildquest/internal/whatsapp"
	"wildquest/pkg/cache"
	"wildquest/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier *notifications.Service
	log      *logger.Logger

	cacheService cache.Service
	eventService events.Service
	bookingSvc   bookings.Service
}

// NewRouter creates a new router instance. The notifier may be nil when
// Kafka is disabled; the services treat that as a no-op bus.
func NewRouter(cfg *config.Config, db *database.DB, notifier *notifications.Service, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
		log:      log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.cacheService = cache.NewService(r.db.GetRedisClient())

	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupCatalogRoutes(api)
		r.setupEventRoutes(api)
		r.setupBookingRoutes(api)
		r.setupPaymentRoutes(api)
		r.setupWhatsAppRoutes(api)
		r.setupReviewRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "wildquest-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "wildquest-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupAuthRoutes configures staff authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupCatalogRoutes configures category, location and feature routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	catalogService := catalog.NewService(catalogRepo, r.config.Redis.CatalogTTL)
	catalogService.SetCacheService(r.cacheService)
	catalogController := catalog.NewController(catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController, r.config)
}

// setupEventRoutes configures event management routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo, r.config.Redis.EventTTL)
	eventService.SetCacheService(r.cacheService)
	eventController := events.NewController(eventService)

	// bookings, whatsapp and reviews depend on the event service
	r.eventService = eventService

	events.SetupEventRoutes(rg, eventController, r.config)
}

// setupBookingRoutes configures the booking lifecycle routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	tracker := capacity.NewTracker(r.db.GetPostgreSQL())
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL(), tracker)
	calculator := pricing.NewCalculator(r.config.Pricing.TaxRate, r.config.Pricing.GroupDiscountMin)
	bookingService := bookings.NewService(bookingRepo, r.eventService, calculator, r.notifier, r.log)
	bookingController := bookings.NewController(bookingService)

	// payments and whatsapp depend on the booking service
	r.bookingSvc = bookingService

	bookings.SetupBookingRoutes(rg, bookingController, r.config)
}

// setupPaymentRoutes configures payment routes
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	paymentService := payments.NewService(paymentRepo, r.bookingSvc, r.log)
	paymentController := payments.NewController(paymentService)

	payments.SetupPaymentRoutes(rg, paymentController, r.config)
}

// setupWhatsAppRoutes configures the WhatsApp intake funnel
func (r *Router) setupWhatsAppRoutes(rg *gin.RouterGroup) {
	whatsappRepo := whatsapp.NewRepository(r.db.GetPostgreSQL())
	whatsappService := whatsapp.NewService(
		whatsappRepo,
		r.eventService,
		r.bookingSvc,
		r.notifier,
		r.config.WhatsApp.StaffInbox,
		r.config.WhatsApp.BusinessNumber,
		r.log,
	)
	whatsappController := whatsapp.NewController(whatsappService)

	whatsapp.SetupWhatsAppRoutes(rg, whatsappController, r.config)
}

// setupReviewRoutes configures review and moderation routes
func (r *Router) setupReviewRoutes(rg *gin.RouterGroup) {
	reviewRepo := reviews.NewRepository(r.db.GetPostgreSQL())
	reviewService := reviews.NewService(reviewRepo, r.eventService, r.bookingSvc, r.log)
	reviewController := reviews.NewController(reviewService)

	reviews.SetupReviewRoutes(rg, reviewController, r.config)
}
