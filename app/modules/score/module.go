package score

import (
	"context"
	"fmt"
	"sync"

	leaderboarddb "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/repositories"
	scoreservice "github.com/Arcadelis/arcadis-scoring/app/modules/score/application"
	scoredb "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/repositories"
	scorerouter "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/router"
	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	tournamentutil "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/utils"
	"github.com/Arcadelis/arcadis-scoring/config"
	"github.com/Arcadelis/arcadis-scoring/internal/eventbus"
	"github.com/Arcadelis/arcadis-scoring/internal/observability"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the score module.
type Module struct {
	EventBus      eventbus.EventBus
	ScoreService  scoreservice.Service
	ScoreRouter   *scorerouter.ScoreRouter
	config        *config.Config
	cancelFunc    context.CancelFunc
	Helper        utils.Helpers
	observability observability.Observability
}

// NewScoreModule creates a new instance of the score module. The verifier
// comes from the auth module; submissions fail unauthorized without one.
func NewScoreModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	tournamentDB tournamentdb.TournamentDB,
	leaderboardDB leaderboarddb.LeaderboardDB,
	historyDB scoredb.HistoryDB,
	verifier scoreservice.SubmitterVerifier,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Provider.Logger
	metrics := obs.Registry.ScoreMetrics
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "score.NewScoreModule called")

	scoreService := scoreservice.NewScoreService(
		tournamentDB,
		leaderboardDB,
		historyDB,
		verifier,
		logger,
		metrics,
		tracer,
		db,
		tournamentutil.RealClock{},
	)

	scoreRouter := scorerouter.NewScoreRouter(logger, router, eventBus, eventBus, cfg, helpers, tracer)

	if err := scoreRouter.Configure(routerCtx, scoreService); err != nil {
		return nil, fmt.Errorf("failed to configure score router: %w", err)
	}

	module := &Module{
		EventBus:      eventBus,
		ScoreService:  scoreService,
		ScoreRouter:   scoreRouter,
		config:        cfg,
		Helper:        helpers,
		observability: obs,
	}

	return module, nil
}

// Run starts the score module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting score module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Score module goroutine stopped")
}

// Close stops the score module and cleans up resources.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping score module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.ScoreRouter != nil {
		if err := m.ScoreRouter.Close(); err != nil {
			logger.Error("Error closing ScoreRouter from module", "error", err)
			return fmt.Errorf("error closing ScoreRouter: %w", err)
		}
	}

	logger.Info("Score module stopped")
	return nil
}
