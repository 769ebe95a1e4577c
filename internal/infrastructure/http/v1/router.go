// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"dastarkhan/internal/infrastructure/files"
	"dastarkhan/internal/infrastructure/http/v1/dto"
	"dastarkhan/internal/infrastructure/http/v1/handlers"
	"dastarkhan/internal/infrastructure/http/v1/middleware"
	"dastarkhan/pkg/logger"
)

// RouterConfig holds everything the router wires into handlers.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Tokens validates bearer tokens on protected routes
	Tokens middleware.TokenValidator

	Accounts    handlers.AccountService
	Categories  handlers.CategoryService
	Products    handlers.ProductService
	Restaurants handlers.RestaurantService
	Addresses   handlers.AddressService
	Media       handlers.MediaService
	Feedback    handlers.FeedbackService

	// Health checks run by /health/ready, keyed by dependency name
	Health map[string]handlers.Checker

	// PhoneVerification mounts the phone-token and verify routes
	PhoneVerification bool

	// MediaURL turns stored image references into links
	MediaURL dto.URLFunc

	// MediaRoot, when set, is served under files.PublicPrefix
	MediaRoot string

	// CORSOrigins lists allowed browser origins; empty allows any
	CORSOrigins []string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!). ErrorHandler wraps Recovery so a
	// recovered panic is still rendered as JSON.
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	healthHandler := handlers.NewHealthHandler(cfg.Health)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	if cfg.MediaRoot != "" {
		router.Static(files.PublicPrefix, cfg.MediaRoot)
	}

	base := handlers.NewBaseHandler(cfg.MediaURL)
	auth := middleware.Auth(cfg.Tokens)

	v1 := router.Group("/api/v1")
	{
		admin := v1.Group("/admin")
		admin.Use(auth, middleware.RequireAdmin())

		accountHandler := handlers.NewAccountHandler(base, cfg.Accounts)
		accountHandler.RegisterRoutes(
			v1.Group("/account"),
			v1.Group("/account", auth),
			cfg.PhoneVerification,
		)

		catalogHandler := handlers.NewCatalogHandler(base, cfg.Categories, cfg.Products)
		catalogHandler.RegisterRoutes(v1.Group("/catalog"), admin)

		venueHandler := handlers.NewVenueHandler(base, cfg.Restaurants, cfg.Addresses, cfg.Media)
		venueHandler.RegisterRoutes(v1.Group("/restaurant"), admin)

		feedbackHandler := handlers.NewFeedbackHandler(base, cfg.Feedback)
		feedbackHandler.RegisterRoutes(v1.Group("/restaurant", auth), admin)
	}

	return router
}
