package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/travel-support-desk/internal/api/http"
	"github.com/spec-kit/travel-support-desk/internal/api/http/handlers"
	"github.com/spec-kit/travel-support-desk/internal/auth"
	"github.com/spec-kit/travel-support-desk/internal/config"
	"github.com/spec-kit/travel-support-desk/internal/events"
	"github.com/spec-kit/travel-support-desk/internal/observability"
	"github.com/spec-kit/travel-support-desk/internal/persistence"
	"github.com/spec-kit/travel-support-desk/internal/repository"
	"github.com/spec-kit/travel-support-desk/internal/service"
	"github.com/spec-kit/travel-support-desk/internal/validation"
	"github.com/spec-kit/travel-support-desk/internal/web"
	"github.com/spec-kit/travel-support-desk/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Printf("failed to init logger: %v", err)
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("failed to connect postgres", zap.Error(err))
		return err
	}
	defer pg.Close()

	if pg.Configured() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Error("failed to run migrations", zap.Error(err))
			return err
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	ticketRepo := newTicketRepository(cfg, pg, redis, logger)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger))

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Validator:  validation.New(),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	authenticator, err := auth.NewStaticAuthenticator(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.BcryptCost)
	if err != nil {
		logger.Error("failed to init authenticator", zap.Error(err))
		return err
	}
	tokenManager := auth.NewTokenManager(cfg.Admin.SessionSecret, cfg.Admin.SessionTTL())
	authService := service.NewAuthService(service.AuthDependencies{
		Authenticator: authenticator,
		TokenManager:  tokenManager,
	})

	engine, err := web.NewEngine()
	if err != nil {
		logger.Error("failed to load templates", zap.Error(err))
		return err
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		Views:                 engine,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Tickets: handlers.NewTicketsHandler(ticketService),
		Public:  handlers.NewPublicHandler(ticketService, logger),
		Admin: handlers.NewAdminHandler(handlers.AdminHandlerConfig{
			Tickets:      ticketService,
			Auth:         authService,
			SecureCookie: cfg.App.Env == "production",
			Logger:       logger,
		}),
		AuthMiddleware: auth.NewSessionMiddleware(authService.TokenManager(), "/admin/login"),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(ctx, logger)

	return app.Shutdown()
}

// newTicketRepository picks Postgres when configured, otherwise memory, and
// layers the Redis cache on top when enabled.
func newTicketRepository(cfg *config.Config, pg *persistence.Postgres, redis *persistence.Redis, logger *zap.Logger) repository.TicketRepository {
	var repo repository.TicketRepository
	if pg.Configured() {
		repo = repository.NewTicketRepository(pg.PoolHandle())
	} else {
		repo = repository.NewMemoryTicketRepository()
	}
	if redis.Configured() {
		repo = repository.NewCachedTicketRepository(repo, redis.Client, cfg.Redis.CacheTTL(), logger)
	}
	return repo
}

func waitForShutdown(ctx context.Context, logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("shutting down", zap.Error(ctx.Err()))
	}
}
