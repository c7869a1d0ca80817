// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"tixground/internal/auth"
	"tixground/internal/bookings"
	"tixground/internal/captcha"
	"tixground/internal/payment"
	"tixground/internal/seats"
	"tixground/internal/shared/config"
	"tixground/internal/shows"
	"tixground/pkg/cache"
	"tixground/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	log    *logger.Logger
	cache  cache.Service // nil when redis is not configured

	// Shared services for cross-feature injection
	seatService    seats.Service
	captchaService captcha.Service
	paymentBus     *payment.Bus
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, log *logger.Logger, cacheService cache.Service) *Router {
	return &Router{
		config: cfg,
		log:    log,
		cache:  cacheService,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) error {
	r.setupHealthRoutes(engine)

	api := engine.Group("/api")
	{
		if err := r.setupAuthRoutes(api); err != nil {
			return err
		}
		r.setupShowRoutes(api)
		r.setupSeatRoutes(api)
		r.setupCaptchaRoutes(api)

		// Bookings depend on seats and captcha, set up after both
		r.setupBookingRoutes(api)

		r.setupPaymentRoutes(engine, api)
	}

	return nil
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tixground",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) error {
	authService, err := auth.NewService(r.config)
	if err != nil {
		return err
	}
	authController := auth.NewController(authService, r.config)

	auth.SetupAuthRoutes(rg, authController)
	return nil
}

// setupShowRoutes configures show date listing routes
func (r *Router) setupShowRoutes(rg *gin.RouterGroup) {
	showService := shows.NewService(r.config)
	showController := shows.NewController(showService)

	shows.SetupShowRoutes(rg, showController)
}

// setupSeatRoutes configures the seat map routes
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatService := seats.NewService(r.config)
	seatController := seats.NewController(seatService)

	// Store seat service for booking injection
	r.seatService = seatService

	seats.SetupSeatRoutes(rg, r.config, seatController)
}

// setupCaptchaRoutes configures challenge issuing routes
func (r *Router) setupCaptchaRoutes(rg *gin.RouterGroup) {
	var store captcha.Store
	if r.cache != nil {
		store = captcha.NewRedisStore(r.cache)
		r.log.Info("captcha store backed by redis")
	} else {
		store = captcha.NewMemoryStore()
		r.log.Info("captcha store backed by process memory")
	}

	captchaService := captcha.NewService(store, r.config)
	captchaController := captcha.NewController(captchaService, r.config)

	// Store captcha service for booking injection
	r.captchaService = captchaService

	captcha.SetupCaptchaRoutes(rg, captchaController)
}

// setupBookingRoutes configures booking confirmation routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingService := bookings.NewService(r.seatService, r.captchaService)
	bookingController := bookings.NewController(bookingService, r.config)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupPaymentRoutes configures the payment page and sentinel routes
func (r *Router) setupPaymentRoutes(engine *gin.Engine, rg *gin.RouterGroup) {
	r.paymentBus = payment.NewBus()
	paymentController := payment.NewController(r.paymentBus, r.config.Payment.PollTimeout, r.log)

	payment.SetupPaymentRoutes(engine, rg, paymentController)
}
