package tournamenthandlers

import (
	"log/slog"

	tournamentservice "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/application"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"go.opentelemetry.io/otel/trace"
)

// TournamentHandlers handles tournament-related events.
type TournamentHandlers struct {
	service tournamentservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	helpers utils.Helpers
}

// NewTournamentHandlers creates a new TournamentHandlers instance.
func NewTournamentHandlers(service tournamentservice.Service, logger *slog.Logger, tracer trace.Tracer, helpers utils.Helpers) Handlers {
	return &TournamentHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		helpers: helpers,
	}
}
