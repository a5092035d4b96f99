package scorerouter

import (
	"context"
	"fmt"
	"log/slog"

	scoreservice "github.com/Arcadelis/arcadis-scoring/app/modules/score/application"
	scorehandlers "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/handlers"
	"github.com/Arcadelis/arcadis-scoring/config"
	"github.com/Arcadelis/arcadis-scoring/internal/eventbus"
	scoreevents "github.com/Arcadelis/arcadis-scoring/internal/events/score"
	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"
)

// ScoreRouter handles routing for score module events.
type ScoreRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber eventbus.EventBus
	publisher  eventbus.EventBus
	config     *config.Config
	helper     utils.Helpers
	tracer     trace.Tracer
}

// NewScoreRouter creates a new ScoreRouter.
func NewScoreRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	config *config.Config,
	helper utils.Helpers,
	tracer trace.Tracer,
) *ScoreRouter {
	return &ScoreRouter{
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
// The identity middleware runs before the handlers so submission verification
// sees the bearer token from message metadata.
func (r *ScoreRouter) Configure(routerCtx context.Context, scoreService scoreservice.Service) error {
	handlers := scorehandlers.NewScoreHandlers(scoreService, r.logger, r.tracer, r.helper)

	middlewareHelper := utils.NewMiddlewareHelper()
	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middlewareHelper.CommonMetadataMiddleware("score"),
		middlewareHelper.IdentityMetadataMiddleware(),
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
	handlerName := "score." + topic

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
func (r *ScoreRouter) RegisterHandlers(ctx context.Context, handlers scorehandlers.Handlers) error {
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

	registerHandler(deps, scoreevents.ScoreSubmissionRequestedV1, handlers.HandleScoreSubmissionRequested)
	registerHandler(deps, scoreevents.ScoreHistoryRequestedV1, handlers.HandleScoreHistoryRequested)

	return nil
}

// Close stops the router.
func (r *ScoreRouter) Close() error {
	return r.Router.Close()
}
