package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/places-service/internal/api/http"
	"github.com/spec-kit/places-service/internal/api/http/handlers"
	"github.com/spec-kit/places-service/internal/auth"
	"github.com/spec-kit/places-service/internal/cache"
	"github.com/spec-kit/places-service/internal/config"
	"github.com/spec-kit/places-service/internal/events"
	"github.com/spec-kit/places-service/internal/media"
	"github.com/spec-kit/places-service/internal/observability"
	"github.com/spec-kit/places-service/internal/persistence"
	"github.com/spec-kit/places-service/internal/repository"
	"github.com/spec-kit/places-service/internal/service"
	"github.com/spec-kit/places-service/internal/validation"
	"github.com/spec-kit/places-service/internal/worker"
	"github.com/spec-kit/places-service/web"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	mediaStore, err := media.NewStore(cfg.Upload, logger)
	if err != nil {
		logger.Fatal("failed to init media store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	placeRepo := repository.NewPlaceRepository(pool)

	jsonCache := cache.NewRedisCache(redis.Client)
	dispatcher := events.NewInMemoryDispatcher()

	userService := service.NewUserService(*cfg, service.UserDependencies{
		UserRepo:   userRepo,
		Cache:      jsonCache,
		Dispatcher: dispatcher,
	})
	placeService := service.NewPlaceService(*cfg, service.PlaceDependencies{
		PlaceRepo:  placeRepo,
		Cache:      jsonCache,
		Media:      mediaStore,
		Dispatcher: dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(userService.TokenManager(), userRepo)
	validator := validation.New()
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Upload.MaxBytes) + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	var limiter *httptransport.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = httptransport.NewRateLimiter(cfg.RateLimit)
	}

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	usersHandler := handlers.NewUsersHandler(userService, mediaStore, validator)
	placesHandler := handlers.NewPlacesHandler(placeService, mediaStore, validator)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Users:          usersHandler,
		Places:         placesHandler,
		AuthMiddleware: authMiddleware,
		RateLimiter:    limiter,
		UploadDir:      mediaStore.Dir(),
		WebAssets:      web.Assets(),
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
