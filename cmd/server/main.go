package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/quizbank-service/internal/cache"
	"github.com/SAP-F-2025/quizbank-service/internal/config"
	"github.com/SAP-F-2025/quizbank-service/internal/events"
	"github.com/SAP-F-2025/quizbank-service/internal/handlers"
	"github.com/SAP-F-2025/quizbank-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/quizbank-service/internal/services"
	"github.com/SAP-F-2025/quizbank-service/internal/utils"
	"github.com/SAP-F-2025/quizbank-service/internal/validator"
	"github.com/SAP-F-2025/quizbank-service/pkg"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// redisPinger adapts the redis client to handlers.HealthChecker
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := utils.NewLogger(cfg.Environment)
	slog.SetDefault(logger)
	appLogger := utils.NewSlogLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	repo := postgres.NewRepository(db)
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	sessionCache := cache.NewRedisCache(redisClient, "quizbank:", appLogger)

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("Failed to create event publisher, falling back to mock", "error", err)
		publisher = events.NewMockEventPublisher(logger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	// In-process events are only observable from inside this process.
	if local, ok := publisher.(*events.GoChannelEventPublisher); ok {
		messages, err := local.Subscribe(ctx)
		if err != nil {
			return err
		}
		go events.ConsumeBankEvents(ctx, messages, events.LogBankEvent(logger), logger)
	}

	v := validator.New()
	serviceManager := services.NewServiceManager(cfg, repo, sessionCache, publisher, logger, v)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(appLogger))
	router.Use(utils.ContextLogger(appLogger))
	router.MaxMultipartMemory = cfg.MaxUploadBytes + 1<<20

	handlers.NewHandlerManager(serviceManager, v, appLogger, cfg.MaxUploadBytes, map[string]handlers.HealthChecker{
		"postgres": repo,
		"redis":    redisPinger{client: redisClient},
	}).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting quizbank service", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down quizbank service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
