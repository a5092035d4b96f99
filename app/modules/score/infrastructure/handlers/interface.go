package scorehandlers

import (
	"context"

	scoreevents "github.com/Arcadelis/arcadis-scoring/internal/events/score"
	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
)

// Handlers defines the typed event handlers for the score module.
type Handlers interface {
	HandleScoreSubmissionRequested(ctx context.Context, payload *scoreevents.ScoreSubmissionRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleScoreHistoryRequested(ctx context.Context, payload *scoreevents.ScoreHistoryRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
