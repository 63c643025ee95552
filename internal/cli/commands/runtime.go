package commands

import (
	"context"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-helpdesk/internal/config"
	"github.com/spec-kit/hospital-helpdesk/internal/events"
	"github.com/spec-kit/hospital-helpdesk/internal/observability"
	"github.com/spec-kit/hospital-helpdesk/internal/persistence"
	"github.com/spec-kit/hospital-helpdesk/internal/repository"
)

// runtime bundles the shared dependencies a subcommand needs. With
// dryRun the repositories are in-memory and no connections are opened.
type runtime struct {
	cfg        *config.Config
	logger     *zap.Logger
	pg         *persistence.Postgres
	taxonomy   repository.TaxonomyRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

func openRuntime(ctx context.Context, dryRun bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if level := viper.GetString("log_level"); level != "" {
		cfg.Logger.Level = level
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		cfg:        cfg,
		logger:     logger,
		dispatcher: events.NewInMemoryDispatcher(),
	}

	if dryRun {
		rt.taxonomy = repository.NewInMemoryTaxonomy()
		rt.tickets = repository.NewInMemoryTickets()
		return rt, nil
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			pg.Close()
			return nil, err
		}
	}

	rt.pg = pg
	rt.taxonomy = repository.NewTaxonomyRepository(pg.PoolHandle())
	rt.tickets = repository.NewTicketRepository(pg.PoolHandle())
	return rt, nil
}

func (r *runtime) Close() {
	if r.pg != nil {
		r.pg.Close()
	}
	_ = r.logger.Sync()
}
