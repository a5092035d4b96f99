// Package app assembles the backend: storage, event bus, observability, and
// the four domain modules behind one Watermill router.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Arcadelis/arcadis-scoring/app/modules/auth"
	"github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard"
	"github.com/Arcadelis/arcadis-scoring/app/modules/score"
	"github.com/Arcadelis/arcadis-scoring/app/modules/tournament"
	"github.com/Arcadelis/arcadis-scoring/config"
	"github.com/Arcadelis/arcadis-scoring/db/bundb"
	"github.com/Arcadelis/arcadis-scoring/internal/attr"
	"github.com/Arcadelis/arcadis-scoring/internal/eventbus"
	leaderboardevents "github.com/Arcadelis/arcadis-scoring/internal/events/leaderboard"
	scoreevents "github.com/Arcadelis/arcadis-scoring/internal/events/score"
	tournamentevents "github.com/Arcadelis/arcadis-scoring/internal/events/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/observability"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	natsio "github.com/nats-io/nats.go"
)

// App wires configuration, storage, messaging, and the domain modules.
type App struct {
	Config          *config.Config
	Observability   observability.Observability
	WatermillRouter *message.Router
	EventBus        eventbus.EventBus

	AuthModule        *auth.Module
	TournamentModule  *tournament.Module
	LeaderboardModule *leaderboard.Module
	ScoreModule       *score.Module

	db         *bundb.DBService
	natsConn   *natsio.Conn
	httpServer *http.Server
	helpers    utils.Helpers
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewApp initializes every dependency and configures the module routers.
// Handlers are registered here; Run starts consuming.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs, err := observability.Init(ctx, observability.Config{
		ServiceName:    "arcadis-scoring",
		Environment:    cfg.Observability.Environment,
		Version:        cfg.Observability.Version,
		MetricsAddress: cfg.Observability.MetricsAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Provider.Logger

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	eventBus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger, "backend", obs.Registry.EventBusMetrics, obs.Registry.Tracer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	for _, stream := range []string{
		tournamentevents.StreamName,
		leaderboardevents.StreamName,
		scoreevents.StreamName,
	} {
		if err := eventBus.CreateStream(ctx, stream); err != nil {
			return nil, fmt.Errorf("failed to create stream %s: %w", stream, err)
		}
	}

	watermillRouter, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}

	helpers := utils.NewHelper(logger)

	// The auth callout needs its own core NATS connection; the event bus
	// connection is owned by watermill.
	var natsConn *natsio.Conn
	if cfg.AuthCallout.Enabled {
		natsConn, err = natsio.Connect(cfg.NATS.URL,
			natsio.Name("arcadis-scoring-auth"),
			natsio.RetryOnFailedConnect(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS for auth callout: %w", err)
		}
	}

	httpRouter := chi.NewRouter()

	authModule, err := auth.NewModule(ctx, cfg, obs, natsConn, httpRouter)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth module: %w", err)
	}

	tournamentModule, err := tournament.NewTournamentModule(ctx, cfg, obs, dbService.TournamentDB, dbService.GetDB(), eventBus, watermillRouter, helpers, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tournament module: %w", err)
	}

	leaderboardModule, err := leaderboard.NewLeaderboardModule(ctx, cfg, obs, dbService.LeaderboardDB, dbService.GetDB(), eventBus, watermillRouter, helpers, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}

	scoreModule, err := score.NewScoreModule(ctx, cfg, obs,
		dbService.TournamentDB,
		dbService.LeaderboardDB,
		dbService.HistoryDB,
		authModule.GetService(),
		dbService.GetDB(), eventBus, watermillRouter, helpers, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize score module: %w", err)
	}

	application := &App{
		Config:            cfg,
		Observability:     obs,
		WatermillRouter:   watermillRouter,
		EventBus:          eventBus,
		AuthModule:        authModule,
		TournamentModule:  tournamentModule,
		LeaderboardModule: leaderboardModule,
		ScoreModule:       scoreModule,
		db:                dbService,
		natsConn:          natsConn,
		helpers:           helpers,
	}

	if cfg.HTTP.Address != "" {
		application.httpServer = &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           httpRouter,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return application, nil
}

// DB returns the database service.
func (app *App) DB() *bundb.DBService {
	return app.db
}

// Run starts the Watermill router, the modules, and the auth HTTP listener,
// then blocks until ctx is canceled.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Provider.Logger

	ctx, cancel := context.WithCancel(ctx)
	app.cancelFunc = cancel
	defer cancel()

	routerErr := make(chan error, 1)
	go func() {
		routerErr <- app.WatermillRouter.Run(ctx)
	}()

	select {
	case <-app.WatermillRouter.Running():
	case err := <-routerErr:
		return fmt.Errorf("watermill router failed to start: %w", err)
	}

	app.wg.Add(4)
	go app.AuthModule.Run(ctx, &app.wg)
	go app.TournamentModule.Run(ctx, &app.wg)
	go app.LeaderboardModule.Run(ctx, &app.wg)
	go app.ScoreModule.Run(ctx, &app.wg)

	if app.httpServer != nil {
		go func() {
			logger.InfoContext(ctx, "Auth HTTP listener started",
				attr.String("address", app.httpServer.Addr),
			)
			if err := app.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.ErrorContext(ctx, "Auth HTTP listener stopped", attr.Error(err))
			}
		}()
	}

	logger.InfoContext(ctx, "Application started")
	<-ctx.Done()
	return nil
}

// Close shuts everything down in reverse dependency order.
func (app *App) Close() error {
	logger := app.Observability.Provider.Logger
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	if app.httpServer != nil {
		if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down HTTP listener", attr.Error(err))
		}
	}

	for _, closer := range []interface{ Close() error }{
		app.ScoreModule, app.LeaderboardModule, app.TournamentModule, app.AuthModule,
	} {
		if err := closer.Close(); err != nil {
			logger.Error("Error closing module", attr.Error(err))
		}
	}

	app.wg.Wait()

	if err := app.WatermillRouter.Close(); err != nil {
		logger.Error("Error closing watermill router", attr.Error(err))
	}
	if err := app.EventBus.Close(); err != nil {
		logger.Error("Error closing event bus", attr.Error(err))
	}
	if app.natsConn != nil {
		app.natsConn.Close()
	}
	if err := app.db.GetDB().Close(); err != nil {
		logger.Error("Error closing database connection", attr.Error(err))
	}
	if err := app.Observability.Provider.Close(shutdownCtx); err != nil {
		logger.Error("Error closing observability", attr.Error(err))
	}

	logger.Info("Application shut down")
	return nil
}
