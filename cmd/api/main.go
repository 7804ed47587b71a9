package main

// @title Place Index Service API
// @version 1.0.0
// @description Gateway service in front of the places backend. Keeps a viewport place index per map session: viewport refreshes are decluttered onto a grid, searches are debounced with last-keystroke-wins ordering, and missing place metadata is enriched in the background through a Redis-backed detail cache.
// @description
// @description Core capabilities:
// @description - Per-session viewport refresh with grid decluttering and stale-response protection
// @description - Debounced, sequence-guarded place search
// @description - Background metadata enrichment with in-flight deduplication
// @description - Proxied reviews, bookmarks and place recommendations

// @contact.name API Support
// @contact.email support@greasemeter.live

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/greasemeter/place-index/docs"
	"github.com/greasemeter/place-index/internal/config"
	httpDelivery "github.com/greasemeter/place-index/internal/delivery/http"
	"github.com/greasemeter/place-index/internal/delivery/http/handler"
	"github.com/greasemeter/place-index/internal/infrastructure/greasemeter"
	"github.com/greasemeter/place-index/internal/pkg/logger"
	"github.com/greasemeter/place-index/internal/repository/cache"
	"github.com/greasemeter/place-index/internal/usecase"
	"github.com/greasemeter/place-index/internal/worker"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Place Index Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Health check
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 5. Initialize repositories
	placesRepo := greasemeter.NewPlacesClient(&cfg.Upstream, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	log.Info("Repositories initialized")

	// 6. Initialize workers
	workerManager := worker.NewWorkerManager(log)

	var enrichQueue usecase.EnrichmentQueue
	var enrichmentWorker *worker.EnrichmentWorker
	if cfg.Worker.Enabled {
		enrichmentWorker = worker.NewEnrichmentWorker(cfg.Worker.QueueSize, log)
		workerManager.Register(enrichmentWorker)
		enrichQueue = enrichmentWorker
	}

	// 7. Initialize use cases
	enrichmentUC := usecase.NewEnrichmentUseCase(
		placesRepo,
		cacheRepo,
		log,
		cfg.Cache.DetailCacheTTL,
	)

	newIndex := func() *usecase.PlaceIndex {
		return usecase.NewPlaceIndex(
			placesRepo,
			cacheRepo,
			enrichmentUC,
			enrichQueue,
			cfg.Index,
			cfg.Cache.SuggestCacheTTL,
			log,
		)
	}

	sessionUC := usecase.NewSessionUseCase(newIndex, cfg.Session.TTL, log)
	reviewUC := usecase.NewReviewUseCase(placesRepo, log)
	bookmarkUC := usecase.NewBookmarkUseCase(placesRepo, log)

	workerManager.Register(worker.NewSessionJanitor(sessionUC, cfg.Session.SweepInterval, log))
	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	sessionHandler := handler.NewSessionHandler(sessionUC, log)
	viewportHandler := handler.NewViewportHandler(sessionUC, log)
	suggestHandler := handler.NewSuggestHandler(sessionUC, log)
	placeHandler := handler.NewPlaceHandler(enrichmentUC, log)
	reviewHandler := handler.NewReviewHandler(reviewUC, log)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkUC, log)
	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		sessionHandler,
		viewportHandler,
		suggestHandler,
		placeHandler,
		reviewHandler,
		bookmarkHandler,
	)
	log.Info("HTTP server initialized")

	// 10. Start workers and server
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	workerCancel()
	if err := workerManager.Stop(); err != nil {
		log.Error("Worker shutdown error", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
