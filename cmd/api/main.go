package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	handlerHttp "github.com/mikiasgoitom/videoreact/internal/handler/http"
	"github.com/mikiasgoitom/videoreact/internal/infrastructure/config"
	database "github.com/mikiasgoitom/videoreact/internal/infrastructure/database"
	"github.com/mikiasgoitom/videoreact/internal/infrastructure/logger"
	"github.com/mikiasgoitom/videoreact/internal/infrastructure/metrics"
	"github.com/mikiasgoitom/videoreact/internal/infrastructure/mirror"
	"github.com/mikiasgoitom/videoreact/internal/infrastructure/realtime"
	"github.com/mikiasgoitom/videoreact/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/videoreact/internal/infrastructure/repository/sqlite"
	"github.com/mikiasgoitom/videoreact/internal/infrastructure/validator"
	"github.com/mikiasgoitom/videoreact/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/videoreact/internal/usecase/contract"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig := config.NewConfig()
	if err := appConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	appLogger := logger.NewStdLogger(appConfig.LogLevel, appConfig.LogFormat)

	if err := run(appConfig, appLogger); err != nil {
		appLogger.Fatalf("%v", err)
	}
}

// run serves until SIGINT/SIGTERM. Every resource it opens is released
// before it returns.
func run(appConfig *config.Config, appLogger usecasecontract.IAppLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Primary store
	repo, closeStore, err := openPrimaryStore(ctx, appConfig)
	if err != nil {
		return fmt.Errorf("failed to open %s primary store: %w", appConfig.PrimaryStore, err)
	}
	defer closeStore()

	if appConfig.ResetPrimaryOnStart {
		if err := repo.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset primary store: %w", err)
		}
		appLogger.Infof("primary store reset, rebuilding from %s", appConfig.MirrorPath)
	}

	mirrorStore := mirror.NewJSONFileStore(appConfig.MirrorPath)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	// Real-time fan-out
	hub := realtime.NewHub(appConfig.SubscriberBuffer, appLogger, appMetrics)

	var broadcaster contract.IBroadcaster = hub
	if appConfig.RedisURL != "" {
		relay, err := startRelay(ctx, appConfig, hub, appLogger)
		if err != nil {
			appLogger.Warnf("Redis relay unavailable, broadcasting locally only: %v", err)
		} else {
			defer relay.Close()
			broadcaster = relay
		}
	}

	// Usecases
	interactionUsecase := usecase.NewInteractionUsecase(repo, mirrorStore, broadcaster, appLogger)
	interactionUsecase.SetObserver(appMetrics)

	restored, err := interactionUsecase.RestoreFromMirror(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore interactions from mirror: %w", err)
	}
	appLogger.Infof("restored %d interaction records from %s", restored, mirrorStore.Path())

	// Register custom validators
	validator.RegisterCustomValidators()
	appValidator := validator.NewValidator()

	router := gin.Default()
	appRouter := handlerHttp.NewRouter(interactionUsecase, appValidator, hub, appLogger, handlerHttp.RouterConfig{
		AllowedOrigins:     appConfig.AllowedOrigins,
		RateLimitPerSecond: appConfig.RateLimitPerSecond,
		Gatherer:           registry,
	})
	appRouter.SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Infof("Server running on port %s", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		appLogger.Infof("shutting down")
	case err := <-serveErr:
		runErr = fmt.Errorf("failed to start server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// hijacked websocket connections are not tracked by Shutdown
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Server forced to shut down: %v", err)
	}
	return runErr
}

func openPrimaryStore(ctx context.Context, cfg *config.Config) (contract.IInteractionRepository, func(), error) {
	switch cfg.PrimaryStore {
	case config.StoreMongoDB:
		client, err := database.NewMongoDBClient(cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		repo, err := mongodb.NewInteractionRepository(ctx, client.Client.Database(cfg.MongoDBName))
		if err != nil {
			_ = client.Disconnect()
			return nil, nil, err
		}
		return repo, func() { _ = client.Disconnect() }, nil
	default:
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := sqlite.NewInteractionRepository(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, closeDB(db), nil
	}
}

func closeDB(db *sql.DB) func() {
	return func() { _ = db.Close() }
}

func startRelay(ctx context.Context, cfg *config.Config, hub *realtime.Hub, logger usecasecontract.IAppLogger) (*realtime.RedisRelay, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	relay := realtime.NewRedisRelay(rdb, cfg.RedisChannel, hub, logger)
	if err := relay.Start(ctx); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return relay, nil
}
