package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/czegarraro/backend/internal/api/http"
	"github.com/czegarraro/backend/internal/api/http/handlers"
	"github.com/czegarraro/backend/internal/auth"
	"github.com/czegarraro/backend/internal/config"
	"github.com/czegarraro/backend/internal/domain"
	"github.com/czegarraro/backend/internal/events"
	"github.com/czegarraro/backend/internal/observability"
	"github.com/czegarraro/backend/internal/persistence"
	"github.com/czegarraro/backend/internal/repository"
	"github.com/czegarraro/backend/internal/service"
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

	if pg.PoolHandle() != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	problemRepo := buildProblemRepository(pg, cfg.App.SeedFile, logger)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	notificationService.RegisterHandlers()

	problemService := service.NewProblemService(service.ProblemDependencies{
		ProblemRepo: problemRepo,
		Dispatcher:  dispatcher,
	})

	verifier := auth.NewDemoVerifier(cfg.Auth.DemoUsername, cfg.Auth.DemoPassword, cfg.Auth.DemoPasswordHash)
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	authService := service.NewAuthService(verifier, tokenManager)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	facetCache := persistence.NewFacetCache(redis, time.Duration(cfg.Cache.FacetTTLSeconds)*time.Second, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, cfg, logger, metrics)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, cfg.Auth.CookieSecure),
		Problems:       handlers.NewProblemsHandler(problemService, facetCache),
		Filters:        handlers.NewFiltersHandler(problemService, facetCache),
		Analytics:      handlers.NewAnalyticsHandler(problemService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func buildProblemRepository(pg *persistence.Postgres, seedFile string, logger *zap.Logger) repository.ProblemRepository {
	if pg.PoolHandle() != nil {
		return repository.NewProblemRepository(pg.PoolHandle())
	}

	var seed []domain.Problem
	if seedFile != "" {
		loaded, err := repository.LoadSeedProblems(seedFile)
		if err != nil {
			logger.Fatal("failed to load seed problems", zap.Error(err))
		}
		seed = loaded
	}
	logger.Info("using in-memory problem store", zap.Int("seeded", len(seed)))
	return repository.NewMemoryProblemRepository(seed)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
