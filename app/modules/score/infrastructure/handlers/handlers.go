package scorehandlers

import (
	"log/slog"

	scoreservice "github.com/Arcadelis/arcadis-scoring/app/modules/score/application"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"go.opentelemetry.io/otel/trace"
)

// ScoreHandlers handles score-related events.
type ScoreHandlers struct {
	service scoreservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	helpers utils.Helpers
}

// NewScoreHandlers creates a new ScoreHandlers instance.
func NewScoreHandlers(service scoreservice.Service, logger *slog.Logger, tracer trace.Tracer, helpers utils.Helpers) Handlers {
	return &ScoreHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		helpers: helpers,
	}
}
