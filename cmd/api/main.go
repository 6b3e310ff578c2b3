package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/pagehub/internal/api/http"
	"github.com/spec-kit/pagehub/internal/api/http/handlers"
	"github.com/spec-kit/pagehub/internal/auth"
	"github.com/spec-kit/pagehub/internal/config"
	"github.com/spec-kit/pagehub/internal/events"
	"github.com/spec-kit/pagehub/internal/observability"
	"github.com/spec-kit/pagehub/internal/persistence"
	"github.com/spec-kit/pagehub/internal/repository"
	"github.com/spec-kit/pagehub/internal/secrets"
	"github.com/spec-kit/pagehub/internal/service"
	"github.com/spec-kit/pagehub/internal/worker"
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

	objects, err := persistence.NewObjectStore(cfg.ObjectStore, logger)
	if err != nil {
		logger.Fatal("failed to configure object store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	siteRepo := repository.NewSiteRepository(pool)
	tokenRepo := repository.NewAccessTokenRepository(pool)

	secretStore := secrets.NewRedisStore(redis.Client)
	tokenSecrets := secrets.NewProvider(secretStore, cfg.Auth.TokenSecretRef)
	adminSecrets := secrets.NewProvider(secretStore, cfg.Auth.AdminAPIKeySecretRef)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	issuer := auth.NewIssuer(tokenSecrets, tokenRepo, cfg.Auth.TokenValidity())
	verifier := auth.NewVerifier(tokenSecrets, logger)
	adminGate := auth.NewSecretAdminGate(adminSecrets, logger)

	adminMiddleware := auth.NewAdminMiddleware(adminGate)
	siteAccess := auth.NewSiteAccessMiddleware(verifier, metrics)

	siteService := service.NewSiteService(cfg.ObjectStore.BucketPrefix, service.SiteDependencies{
		SiteRepo:   siteRepo,
		Buckets:    service.NewMinioBucketStore(objects.ClientHandle()),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	tokenService := service.NewAccessTokenService(service.AccessTokenDependencies{
		Issuer:     issuer,
		SiteRepo:   siteRepo,
		RecordRepo: tokenRepo,
		Dispatcher: dispatcher,
		Metrics:    metrics,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, objects)
	sitesHandler := handlers.NewSitesHandler(siteService)
	tokensHandler := handlers.NewTokensHandler(tokenService)
	contentHandler := handlers.NewContentHandler(siteService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          healthHandler,
		Sites:           sitesHandler,
		Tokens:          tokensHandler,
		Content:         contentHandler,
		AdminMiddleware: adminMiddleware,
		SiteAccess:      siteAccess,
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
