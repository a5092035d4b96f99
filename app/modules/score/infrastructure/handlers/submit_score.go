package scorehandlers

import (
	"context"

	scoreservice "github.com/Arcadelis/arcadis-scoring/app/modules/score/application"
	scoreevents "github.com/Arcadelis/arcadis-scoring/internal/events/score"
	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// HandleScoreSubmissionRequested folds one submission into the tournament,
// the global board, and the player's history, and announces the outcome.
func (h *ScoreHandlers) HandleScoreSubmissionRequested(
	ctx context.Context,
	payload *scoreevents.ScoreSubmissionRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	result, err := h.service.SubmitScore(ctx, scoreservice.SubmitScoreInput{
		TournamentID: payload.TournamentID,
		PlayerID:     payload.PlayerID,
		Score:        payload.Score,
	})
	if err != nil {
		return submissionFailed(payload, err), nil
	}

	if result.IsFailure() {
		return submissionFailed(payload, *result.Failure), nil
	}

	submission := *result.Success
	return []handlerwrapper.Result{{
		Topic: scoreevents.ScoreSubmittedV1,
		Payload: &scoreevents.ScoreSubmittedPayloadV1{
			TournamentID: submission.TournamentID,
			GameID:       submission.GameID,
			PlayerID:     submission.PlayerID,
			Score:        submission.Score,
			Rank:         submission.Rank,
		},
	}}, nil
}

func submissionFailed(payload *scoreevents.ScoreSubmissionRequestedPayloadV1, err error) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic: scoreevents.ScoreSubmissionFailedV1,
		Payload: &scoreevents.ScoreSubmissionFailedPayloadV1{
			TournamentID: payload.TournamentID,
			PlayerID:     payload.PlayerID,
			Score:        payload.Score,
			Code:         sharedtypes.ErrorCode(err),
			Reason:       err.Error(),
		},
	}}
}
