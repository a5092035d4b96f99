package leaderboardhandlers

import (
	"log/slog"

	leaderboardservice "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/application"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardHandlers handles leaderboard-related events.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	helpers utils.Helpers
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers instance.
func NewLeaderboardHandlers(service leaderboardservice.Service, logger *slog.Logger, tracer trace.Tracer, helpers utils.Helpers) Handlers {
	return &LeaderboardHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		helpers: helpers,
	}
}
