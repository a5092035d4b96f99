package leaderboard

import (
	"context"
	"fmt"
	"sync"

	leaderboardservice "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/application"
	leaderboarddb "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/router"
	"github.com/Arcadelis/arcadis-scoring/config"
	"github.com/Arcadelis/arcadis-scoring/internal/eventbus"
	"github.com/Arcadelis/arcadis-scoring/internal/observability"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the leaderboard module.
type Module struct {
	EventBus           eventbus.EventBus
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	config             *config.Config
	cancelFunc         context.CancelFunc
	Helper             utils.Helpers
	observability      observability.Observability
}

// NewLeaderboardModule creates a new instance of the leaderboard module.
func NewLeaderboardModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	leaderboardDB leaderboarddb.LeaderboardDB,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Provider.Logger
	metrics := obs.Registry.LeaderboardMetrics
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule called")

	leaderboardService := leaderboardservice.NewLeaderboardService(
		leaderboardDB,
		logger,
		metrics,
		tracer,
		db,
	)

	leaderboardRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, eventBus, eventBus, cfg, helpers, tracer)

	if err := leaderboardRouter.Configure(routerCtx, leaderboardService); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	module := &Module{
		EventBus:           eventBus,
		LeaderboardService: leaderboardService,
		LeaderboardRouter:  leaderboardRouter,
		config:             cfg,
		Helper:             helpers,
		observability:      obs,
	}

	return module, nil
}

// Run starts the leaderboard module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close stops the leaderboard module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.LeaderboardRouter != nil {
		if err := m.LeaderboardRouter.Close(); err != nil {
			logger.Error("Error closing LeaderboardRouter from module", "error", err)
			return fmt.Errorf("error closing LeaderboardRouter: %w", err)
		}
	}

	logger.Info("Leaderboard module stopped")
	return nil
}
