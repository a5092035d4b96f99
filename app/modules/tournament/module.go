package tournament

import (
	"context"
	"fmt"
	"sync"

	tournamentservice "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/application"
	tournamentqueue "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/queue"
	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	tournamentrouter "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/router"
	tournamentutil "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/utils"
	"github.com/Arcadelis/arcadis-scoring/config"
	"github.com/Arcadelis/arcadis-scoring/internal/eventbus"
	"github.com/Arcadelis/arcadis-scoring/internal/observability"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the tournament module.
type Module struct {
	EventBus          eventbus.EventBus
	TournamentService tournamentservice.Service
	TournamentRouter  *tournamentrouter.TournamentRouter
	QueueService      tournamentqueue.QueueService
	config            *config.Config
	cancelFunc        context.CancelFunc
	Helper            utils.Helpers
	observability     observability.Observability
}

// NewTournamentModule creates a new instance of the tournament module.
func NewTournamentModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	tournamentDB tournamentdb.TournamentDB,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Provider.Logger
	metrics := obs.Registry.TournamentMetrics
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "tournament.NewTournamentModule called")

	queueService, err := tournamentqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, metrics, eventBus, helpers)
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament queue service: %w", err)
	}

	tournamentService := tournamentservice.NewTournamentService(
		tournamentDB,
		logger,
		metrics,
		tracer,
		db,
		tournamentutil.RealClock{},
		queueService,
	)

	tournamentRouter := tournamentrouter.NewTournamentRouter(logger, router, eventBus, eventBus, cfg, helpers, tracer)

	if err := tournamentRouter.Configure(routerCtx, tournamentService); err != nil {
		return nil, fmt.Errorf("failed to configure tournament router: %w", err)
	}

	module := &Module{
		EventBus:          eventBus,
		TournamentService: tournamentService,
		TournamentRouter:  tournamentRouter,
		QueueService:      queueService,
		config:            cfg,
		Helper:            helpers,
		observability:     obs,
	}

	return module, nil
}

// Run starts the tournament module, including its lifecycle job queue.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting tournament module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.QueueService.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to start tournament queue service", "error", err)
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Tournament module goroutine stopped")
}

// Close stops the tournament module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping tournament module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.QueueService != nil {
		if err := m.QueueService.Stop(context.Background()); err != nil {
			logger.Error("Error stopping tournament queue service", "error", err)
		}
	}

	if m.TournamentRouter != nil {
		if err := m.TournamentRouter.Close(); err != nil {
			logger.Error("Error closing TournamentRouter from module", "error", err)
			return fmt.Errorf("error closing TournamentRouter: %w", err)
		}
	}

	logger.Info("Tournament module stopped")
	return nil
}
