package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/listing-service/internal/api/http"
	"github.com/spec-kit/listing-service/internal/api/http/handlers"
	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/config"
	"github.com/spec-kit/listing-service/internal/events"
	"github.com/spec-kit/listing-service/internal/observability"
	"github.com/spec-kit/listing-service/internal/persistence"
	"github.com/spec-kit/listing-service/internal/repository"
	"github.com/spec-kit/listing-service/internal/service"
	"github.com/spec-kit/listing-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	for _, dir := range []string{cfg.Upload.ImagesDir, cfg.Upload.DocsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatal("failed to create upload dir", zap.String("dir", dir), zap.Error(err))
		}
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	userService := service.NewUserService(*cfg, userRepo)
	propertyService := service.NewPropertyService(propertyRepo, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, redis.Client)

	worker.StartNotificationWorker(ctx, notificationService, logger)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Upload.MaxBytes,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService)
	usersHandler := handlers.NewUsersHandler(authService, userService)
	propertiesHandler := handlers.NewPropertiesHandler(propertyService)
	uploadsHandler := handlers.NewUploadsHandler(propertyService, cfg.Upload)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Users:          usersHandler,
		Properties:     propertiesHandler,
		Uploads:        uploadsHandler,
		AuthMiddleware: authMiddleware,
		PropertyOwner:  propertyService.OwnerID,
		Upload:         cfg.Upload,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
