package tournamentrouter

import (
	"context"
	"fmt"
	"log/slog"

	tournamentservice "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/application"
	tournamenthandlers "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/handlers"
	"github.com/Arcadelis/arcadis-scoring/config"
	"github.com/Arcadelis/arcadis-scoring/internal/eventbus"
	tournamentevents "github.com/Arcadelis/arcadis-scoring/internal/events/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"
)

// TournamentRouter handles routing for tournament module events.
type TournamentRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	config     *config.Config
	helper     utils.Helpers
	tracer     trace.Tracer
}

// NewTournamentRouter creates a new TournamentRouter.
func NewTournamentRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	config *config.Config,
	helper utils.Helpers,
	tracer trace.Tracer,
) *TournamentRouter {
	return &TournamentRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		config:     config,
		helper:     helper,
		tracer:     tracer,
	}
}

// Configure sets up the router with the necessary handlers and dependencies.
func (r *TournamentRouter) Configure(routerCtx context.Context, tournamentService tournamentservice.Service) error {
	handlers := tournamenthandlers.NewTournamentHandlers(tournamentService, r.logger, r.tracer, r.helper)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		utils.NewMiddlewareHelper().CommonMetadataMiddleware("tournament"),
		middleware.Recoverer,
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

type handlerDeps struct {
	router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	logger     *slog.Logger
	tracer     trace.Tracer
	helper     utils.Helpers
	metrics    handlerwrapper.ReturningMetrics
}

// registerHandler registers a pure transformation-pattern handler with typed payload.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "tournament." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"", // Watermill reads topic from message metadata when empty
		deps.publisher,
		handlerwrapper.WrapTransformingTyped(
			handlerName,
			deps.logger,
			deps.tracer,
			deps.helper,
			deps.metrics,
			handler,
		),
	)
}

// RegisterHandlers registers event handlers using the pure transformation pattern.
func (r *TournamentRouter) RegisterHandlers(ctx context.Context, handlers tournamenthandlers.Handlers) error {
	var metrics handlerwrapper.ReturningMetrics

	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
		helper:     r.helper,
		metrics:    metrics,
	}

	registerHandler(deps, tournamentevents.TournamentCreateRequestedV1, handlers.HandleCreateTournamentRequested)
	registerHandler(deps, tournamentevents.TournamentRetrievalRequestedV1, handlers.HandleTournamentRetrievalRequested)
	registerHandler(deps, tournamentevents.TournamentLeaderboardRequestedV1, handlers.HandleTournamentLeaderboardRequested)
	registerHandler(deps, tournamentevents.TournamentResultsRequestedV1, handlers.HandleTournamentResultsRequested)
	registerHandler(deps, tournamentevents.TournamentListRequestedV1, handlers.HandleTournamentListRequested)
	registerHandler(deps, tournamentevents.TournamentListActiveRequestedV1, handlers.HandleTournamentListActiveRequested)

	return nil
}

// Close stops the router.
func (r *TournamentRouter) Close() error {
	return r.Router.Close()
}
