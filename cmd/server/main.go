// Package main is the entry point for the Dastarkhan API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"dastarkhan/internal/domain/account"
	"dastarkhan/internal/domain/catalogs/category"
	"dastarkhan/internal/domain/catalogs/product"
	"dastarkhan/internal/domain/feedback"
	"dastarkhan/internal/domain/images"
	"dastarkhan/internal/domain/singleton"
	"dastarkhan/internal/domain/venue/address"
	"dastarkhan/internal/domain/venue/media"
	"dastarkhan/internal/domain/venue/restaurant"
	"dastarkhan/internal/infrastructure/cache"
	"dastarkhan/internal/infrastructure/events"
	"dastarkhan/internal/infrastructure/files"
	v1 "dastarkhan/internal/infrastructure/http/v1"
	"dastarkhan/internal/infrastructure/http/v1/handlers"
	"dastarkhan/internal/infrastructure/qrcode"
	"dastarkhan/internal/infrastructure/storage/postgres"
	"dastarkhan/internal/infrastructure/storage/postgres/account_repo"
	"dastarkhan/internal/infrastructure/storage/postgres/catalog_repo"
	"dastarkhan/internal/infrastructure/storage/postgres/feedback_repo"
	"dastarkhan/internal/infrastructure/storage/postgres/migrations"
	"dastarkhan/internal/infrastructure/storage/postgres/venue_repo"
	"dastarkhan/pkg/logger"
	"dastarkhan/pkg/phonetoken"
)

// mediaStore is an image store that can also link to what it holds.
type mediaStore interface {
	images.Store
	URL(ref string) string
}

func main() {
	cfg := loadConfig()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Env == "development",
		Service:     "dastarkhan-api",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting dastarkhan server", "env", cfg.Env, "media_backend", cfg.MediaBackend)

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	if cfg.DBMaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.DBMaxConns)
	}
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	if cfg.MigrateOnStart {
		if err := migrations.Apply(ctx, pool.Pool); err != nil {
			log.Fatalw("failed to apply migrations", "error", err)
		}
	}

	txm := postgres.NewTxManager(pool)
	enforcer := singleton.NewEnforcer(txm, txm)

	// --- Media storage ---
	var store mediaStore
	var mediaRoot string
	switch cfg.MediaBackend {
	case "gcs":
		gcs, err := files.NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentials)
		if err != nil {
			log.Fatalw("failed to open GCS bucket", "bucket", cfg.GCSBucket, "error", err)
		}
		defer gcs.Close()
		store = gcs
	case "local":
		local, err := files.NewLocalStore(cfg.MediaRoot, cfg.PublicBaseURL)
		if err != nil {
			log.Fatalw("failed to prepare media directory", "root", cfg.MediaRoot, "error", err)
		}
		store, mediaRoot = local, local.Root()
	default:
		log.Fatalw("unknown media backend", "backend", cfg.MediaBackend)
	}

	qr, err := qrcode.NewRenderer(cfg.QRLogoPath)
	if err != nil {
		log.Fatalw("failed to load QR logo", "path", cfg.QRLogoPath, "error", err)
	}

	// --- Optional integrations ---
	checks := map[string]handlers.Checker{"database": pool}

	var markers feedback.MarkerCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer client.Close()
		m := cache.NewFeedbackMarkers(client, cfg.FeedbackMarkerTTL)
		markers, checks["redis"] = m, m
		log.Infow("feedback marker cache enabled", "addr", cfg.RedisAddr)
	}

	var publisher feedback.Publisher
	var sender account.CodeSender
	if len(cfg.KafkaBrokers) > 0 {
		feedbackWriter := events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer feedbackWriter.Close()
		publisher = events.NewKafkaPublisher(feedbackWriter)

		if cfg.PhoneVerification {
			codesTopic := cfg.KafkaCodesTopic
			if codesTopic == "" {
				codesTopic = events.DefaultCodeTopic
			}
			codeWriter := events.NewKafkaWriter(cfg.KafkaBrokers, codesTopic)
			defer codeWriter.Close()
			sender = events.NewCodeRequests(codeWriter)
		}
		log.Infow("kafka publishing enabled", "brokers", cfg.KafkaBrokers)
	}

	// --- Repositories ---
	categoryRepo := catalog_repo.NewCategoryRepo(txm)
	productRepo := catalog_repo.NewProductRepo(txm)
	ingredientRepo := catalog_repo.NewIngredientRepo(txm)
	restaurantRepo := venue_repo.NewRestaurantRepo(txm)
	addressRepo := venue_repo.NewAddressRepo(txm)
	mediaRepo := venue_repo.NewMediaRepo(txm)
	feedbackRepo := feedback_repo.NewFeedbackRepo(txm)
	accountRepo := account_repo.NewAccountRepo(txm)

	// --- Services ---
	feedbackService := feedback.NewService(feedbackRepo, restaurantRepo, txm, markers, publisher)

	tokenCfg := account.DefaultTokenConfig(cfg.JWTSecret)
	tokenCfg.AccessTokenTTL = cfg.JWTTTL
	tokens := account.NewTokenService(tokenCfg)

	accountCfg := account.DefaultServiceConfig()
	accountCfg.PhoneVerification = cfg.PhoneVerification
	accountService := account.NewService(
		accountRepo,
		txm,
		tokens,
		phonetoken.New(phonetoken.DefaultConfig()),
		store,
		feedbackService,
		sender,
		accountCfg,
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:            log,
		Tokens:            tokens,
		Accounts:          accountService,
		Categories:        category.NewService(categoryRepo, txm, store),
		Products:          product.NewService(productRepo, ingredientRepo, categoryRepo, txm, store),
		Restaurants:       restaurant.NewService(restaurantRepo, mediaRepo, qr, txm, txm, store),
		Addresses:         address.NewService(addressRepo, txm, enforcer),
		Media:             media.NewService(mediaRepo, restaurantRepo, txm, enforcer, store),
		Feedback:          feedbackService,
		Health:            checks,
		PhoneVerification: cfg.PhoneVerification,
		MediaURL:          store.URL,
		MediaRoot:         mediaRoot,
		CORSOrigins:       cfg.CORSOrigins,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port, "phone_verification", cfg.PhoneVerification)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	pool.LogStats(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
