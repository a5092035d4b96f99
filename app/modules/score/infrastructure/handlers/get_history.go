package scorehandlers

import (
	"context"

	scoreevents "github.com/Arcadelis/arcadis-scoring/internal/events/score"
	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// HandleScoreHistoryRequested returns a player's submission records, oldest
// first. Unknown players read as an empty history.
func (h *ScoreHandlers) HandleScoreHistoryRequested(
	ctx context.Context,
	payload *scoreevents.ScoreHistoryRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	result, err := h.service.GetPlayerHistory(ctx, payload.PlayerID)
	if err != nil {
		return historyFailed(payload, err), nil
	}

	if result.IsFailure() {
		return historyFailed(payload, *result.Failure), nil
	}

	view := *result.Success
	return []handlerwrapper.Result{{
		Topic: scoreevents.ScoreHistoryRetrievedV1,
		Payload: &scoreevents.ScoreHistoryRetrievedPayloadV1{
			PlayerID: view.PlayerID,
			Records:  view.Records,
		},
	}}, nil
}

func historyFailed(payload *scoreevents.ScoreHistoryRequestedPayloadV1, err error) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic: scoreevents.ScoreHistoryFailedV1,
		Payload: &scoreevents.ScoreHistoryFailedPayloadV1{
			PlayerID: payload.PlayerID,
			Code:     sharedtypes.ErrorCode(err),
			Reason:   err.Error(),
		},
	}}
}
