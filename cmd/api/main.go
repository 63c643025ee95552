package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hospital-helpdesk/internal/api/http"
	"github.com/spec-kit/hospital-helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/hospital-helpdesk/internal/config"
	"github.com/spec-kit/hospital-helpdesk/internal/events"
	"github.com/spec-kit/hospital-helpdesk/internal/observability"
	"github.com/spec-kit/hospital-helpdesk/internal/persistence"
	"github.com/spec-kit/hospital-helpdesk/internal/repository"
	"github.com/spec-kit/hospital-helpdesk/internal/service"
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
	taxonomyRepo := repository.NewTaxonomyRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	if cfg.Postgres.RunSeed && pool != nil {
		seeder := service.NewSeeder(taxonomyRepo, logger)
		if _, err := seeder.Run(ctx, service.DefaultSeedSpec()); err != nil {
			logger.Fatal("failed to seed taxonomy", zap.Error(err))
		}
	}

	dispatcher := events.NewInMemoryDispatcher()
	notifier := service.NewNotifier(cfg.Notify, logger)
	notifier.RegisterHandlers(dispatcher)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		TaxonomyRepo: taxonomyRepo,
		Dispatcher:   dispatcher,
	})
	taxonomyService := service.NewTaxonomyService(taxonomyRepo, redis.ClientHandle(), logger)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:  handlers.NewTicketsHandler(ticketService),
		Taxonomy: handlers.NewTaxonomyHandler(taxonomyService),
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
