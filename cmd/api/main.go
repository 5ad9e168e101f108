package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/staysmart/hospitality-platform/internal/api"
	"github.com/staysmart/hospitality-platform/internal/api/handler"
	"github.com/staysmart/hospitality-platform/internal/core/ports"
	"github.com/staysmart/hospitality-platform/internal/core/service"
	"github.com/staysmart/hospitality-platform/internal/infrastructure/cache"
	"github.com/staysmart/hospitality-platform/internal/infrastructure/config"
	mongodb "github.com/staysmart/hospitality-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/staysmart/hospitality-platform/internal/infrastructure/db/redis"
	"github.com/staysmart/hospitality-platform/internal/infrastructure/notify"
	"github.com/staysmart/hospitality-platform/internal/infrastructure/queue"
	"github.com/staysmart/hospitality-platform/internal/infrastructure/storage"
	"github.com/staysmart/hospitality-platform/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(cfg.LogLevel, cfg.Env == "development")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	propertyRepo := mongodb.NewPropertyRepository(db)
	inventoryRepo := mongodb.NewInventoryRepository(db)
	staffRepo := mongodb.NewStaffRepository(db)

	for _, ensure := range []func(context.Context) error{
		propertyRepo.EnsureIndexes,
		inventoryRepo.EnsureIndexes,
		staffRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Redis ---
	rdb, err := redisdb.Open(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()
	throttle := redisdb.NewLoginThrottle(rdb)

	// --- Search cache (local LRU + memcached) ---
	searchCache := cache.NewSearchCache(
		cfg.Memcached.Addr,
		time.Duration(cfg.Memcached.SearchTTLSecs)*time.Second,
		logger.With("search_cache"),
	)

	// --- Approval notifications ---
	var notifier ports.Notifier
	if cfg.AMQP.URL != "" {
		publisher, err := notify.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("amqp connection failed")
		}
		defer publisher.Close()
		notifier = publisher
	} else {
		log.Warn().Msg("AMQP_URL not set, approval notices go to the log")
		notifier = notify.NewLogNotifier(logger.With("notify"))
	}

	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notifier, logger.With("dispatcher"))
	dispatcher.Start(ctx)

	// --- Document storage ---
	docStore, err := storage.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload directory unavailable")
	}

	// --- Services ---
	propertyService := service.NewPropertyService(propertyRepo, staffRepo, dispatcher, searchCache, logger.With("property_service"))
	allocationService := service.NewAllocationService(inventoryRepo, staffRepo, logger.With("allocation_service"))
	chatService := service.NewChatService(service.NewKeywordClassifier(), allocationService, logger.With("chat_service"))
	authService := service.NewAuthService(
		propertyRepo,
		staffRepo,
		throttle,
		service.AdminCredential{Email: cfg.Admin.Email, Password: cfg.Admin.Password},
		cfg.JWTSecret,
		24*time.Hour,
		logger.With("auth_service"),
	)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Auth:      handler.NewAuthHandler(authService),
		Property:  handler.NewPropertyHandler(propertyService),
		Inventory: handler.NewInventoryHandler(allocationService),
		Chat:      handler.NewChatHandler(chatService),
		Upload:    handler.NewUploadHandler(docStore),
		Mongo:     db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
