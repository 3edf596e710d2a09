package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/delfood/owner-service/internal/api/http"
	"github.com/delfood/owner-service/internal/api/http/handlers"
	"github.com/delfood/owner-service/internal/auth"
	"github.com/delfood/owner-service/internal/config"
	"github.com/delfood/owner-service/internal/events"
	"github.com/delfood/owner-service/internal/observability"
	"github.com/delfood/owner-service/internal/persistence"
	"github.com/delfood/owner-service/internal/repository"
	"github.com/delfood/owner-service/internal/service"
	"github.com/delfood/owner-service/internal/session"
	"github.com/delfood/owner-service/internal/worker"
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

	pool := pg.PoolHandle()
	ownerRepo := repository.NewOwnerRepository(pool)
	menuGroupRepo := repository.NewMenuGroupRepository(pool)

	sessions := session.NewRedisStore(redis.Client, cfg.Auth.SessionTTL())
	dispatcher := events.NewInMemoryDispatcher()

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	ownerService := service.NewOwnerService(cfg.Auth, service.OwnerDependencies{
		OwnerRepo:  ownerRepo,
		Sessions:   sessions,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	menuGroupService := service.NewMenuGroupService(menuGroupRepo, dispatcher, logger)
	sessionGate := auth.NewSessionGate(sessions, cfg.Auth.SessionCookieName)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	ownersHandler := handlers.NewOwnersHandler(ownerService, cfg.Auth)
	menuGroupsHandler := handlers.NewMenuGroupsHandler(menuGroupService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      healthHandler,
		Owners:      ownersHandler,
		MenuGroups:  menuGroupsHandler,
		SessionGate: sessionGate,
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
