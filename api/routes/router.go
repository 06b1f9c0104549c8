// api/routes/router.go
package routes

import (
	"context"
	"net/http"
	"time"

	"seatforge/internal/auth"
	"seatforge/internal/events"
	"seatforge/internal/expiration"
	"seatforge/internal/holds"
	"seatforge/internal/notifications"
	"seatforge/internal/orders"
	"seatforge/internal/payments"
	"seatforge/internal/realtime"
	"seatforge/internal/seats"
	"seatforge/internal/shared/apperr"
	"seatforge/internal/shared/config"
	"seatforge/internal/shared/database"
	"seatforge/internal/venues"
	"seatforge/pkg/cache"
	"seatforge/pkg/logger"
	"seatforge/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies. Construction order matters: events
// needs venues+seats (seat seeding on publish), seats needs venues (layout
// lookup), holds needs events+seats, orders needs holds+seats+venues+
// payments+notifications. Everything is wired through the narrow
// collaborator interfaces each package defines rather than a concrete
// cross-package import, so this file is the only place that couples them.
type Router struct {
	config *config.Config
	db     *database.DB
	log    *logger.Logger

	Hub              *realtime.Hub
	ExpirationWorker *expiration.Worker
	NotificationSvc  notifications.NotificationService
}

func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config: cfg,
		db:     db,
		log:    logger.GetDefault(),
	}
}

// SetupRoutes configures all application routes.
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())

	cacheSvc := cache.NewService(r.db.GetRedisClient())

	authService := r.setupAuthRoutes(api)
	venueService := r.setupVenueRoutes(api)
	seatRepo, seatService := r.setupSeatRoutes(api, venueService, cacheSvc)
	eventService := r.setupEventRoutes(api, venueService, seatService)

	hub := realtime.NewHub(r.log)
	r.Hub = hub
	go hub.Run(context.Background())

	holdRepo, holdService := r.setupHoldRoutes(api, eventService, seatRepo, cacheSvc, hub)
	r.setupOrderRoutes(api, holdService, seatRepo, seatService, venueService)
	r.setupRealtimeRoutes(api, hub, authService)

	r.ExpirationWorker = expiration.NewWorker(
		&holdStoreAdapter{holdRepo},
		seatRepo,
		cacheSvc,
		hub,
		r.log,
		expiration.Config{Interval: r.config.Seats.ExpirationWorkerTick, BatchSize: 100},
	)
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatforge-backend",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatforge-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "version": r.config.APIVersion})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) auth.Service {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)
	authRouter.SetupRoutes(rg)
	return authService
}

func (r *Router) setupVenueRoutes(rg *gin.RouterGroup) venues.Service {
	venueRepo := venues.NewRepository(r.db.GetPostgreSQL())
	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	venueService := venues.NewService(venueRepo, seatRepo)
	venueController := venues.NewController(venueService)
	venues.SetupVenueRoutes(rg, venueController)
	return venueService
}

func (r *Router) setupSeatRoutes(rg *gin.RouterGroup, venueService venues.Service, cacheSvc cache.Service) (seats.Repository, seats.Service) {
	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	// venues.Service already implements seats.VenueLayout's single method.
	seatService := seats.NewService(seatRepo, venueService, cacheSvc)
	seatController := seats.NewController(seatService)
	seats.SetupSeatRoutes(rg, seatController)
	return seatRepo, seatService
}

func (r *Router) setupEventRoutes(rg *gin.RouterGroup, venueService venues.Service, seatService seats.Service) events.Service {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	// venues.Service/seats.Service already implement events' two narrow
	// collaborator interfaces - no adapter type needed.
	eventService := events.NewService(eventRepo, venueService, seatService)
	eventController := events.NewController(eventService)
	events.SetupEventRoutes(rg, eventController)
	return eventService
}

func (r *Router) setupHoldRoutes(rg *gin.RouterGroup, eventService events.Service, seatRepo seats.Repository, cacheSvc cache.Service, hub *realtime.Hub) (holds.Repository, holds.Service) {
	holdRepo := holds.NewRepository(r.db.GetPostgreSQL())
	// events.Service already implements holds.EventGate's single method.
	holdService := holds.NewService(
		holdRepo,
		seatRepo,
		eventService,
		cacheSvc,
		hub,
		r.log,
		r.config.Seats.HoldExpiry,
		r.config.Seats.HoldMaxSeatsPerHold,
	)
	holdController := holds.NewController(holdService)

	// The per-session grant-rate limiter is independent of the global
	// IP-based rate limiter's on/off switch - it enforces the hold
	// subsystem's own "max grants per session per minute" invariant.
	holdRateLimiter := ratelimit.NewRateLimiter(r.db.GetRedisClient(), &ratelimit.Config{Enabled: true})
	holds.SetupHoldRoutes(rg, holdController, holdRateLimiter, r.config.Seats.HoldMaxGrantsPerMinute)

	return holdRepo, holdService
}

func (r *Router) setupOrderRoutes(rg *gin.RouterGroup, holdService holds.Service, seatRepo seats.Repository, seatService seats.Service, venueService venues.Service) {
	orderRepo := orders.NewRepository(r.db.GetPostgreSQL())

	var provider payments.Provider
	if r.config.Payment.Mock || r.config.Payment.ProviderKey == "" {
		provider = payments.NewMockProvider()
	} else {
		provider = payments.NewHMACProvider(r.config.Payment.ProviderKey, r.config.Payment.WebhookSecret)
	}

	notifier := r.buildNotifier()

	// venues.Service already implements orders.PricingSource's single
	// method; holds.Service needs the ValidateHold shape conversion.
	orderService := orders.NewService(
		orderRepo,
		seatRepo,
		&holdValidatorAdapter{holdService},
		venueService,
		provider,
		seatService,
		notifier,
		r.log,
	)
	orderController := orders.NewController(orderService)
	orders.SetupOrderRoutes(rg, orderController)

	paymentsController := payments.NewController(provider, func(ctx *gin.Context, event *payments.WebhookEvent) error {
		switch event.Type {
		case payments.EventTypeSucceeded:
			return orderService.OnPaymentSuccess(ctx.Request.Context(), event.PaymentRef)
		case payments.EventTypeFailed:
			return orderService.OnPaymentFailure(ctx.Request.Context(), event.PaymentRef, event.Reason)
		default:
			return apperr.Newf(apperr.InvalidInput, "unrecognized webhook event type %q", event.Type)
		}
	})
	rg.POST("/payments/webhook", paymentsController.Webhook)
}

func (r *Router) setupRealtimeRoutes(rg *gin.RouterGroup, hub *realtime.Hub, authService auth.Service) {
	handler := realtime.NewHandler(hub, &tokenValidatorAdapter{authService})
	rg.GET("/realtime/event/:eventId", handler.Subscribe)
}

// buildNotifier constructs the unified notification service (Kafka
// producer/consumer pair) and stores it so the caller can drive its
// Start/Stop lifecycle alongside the HTTP server's. A construction
// failure degrades to no order notifications rather than failing
// startup - fan-out is best-effort by design (orders.Notifier).
func (r *Router) buildNotifier() orders.Notifier {
	notificationService, err := notifications.NewUnifiedNotificationService(nil)
	if err != nil {
		r.log.Error("notification service unavailable, order notifications disabled", "error", err)
		return nil
	}
	r.NotificationSvc = notificationService
	return notifications.NewOrderNotifierAdapter(notificationService)
}
