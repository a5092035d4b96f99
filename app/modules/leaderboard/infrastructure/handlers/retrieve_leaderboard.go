package leaderboardhandlers

import (
	"context"

	leaderboardevents "github.com/Arcadelis/arcadis-scoring/internal/events/leaderboard"
	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// HandleLeaderboardRetrievalRequested returns one page of a game's global
// leaderboard.
func (h *LeaderboardHandlers) HandleLeaderboardRetrievalRequested(
	ctx context.Context,
	payload *leaderboardevents.LeaderboardRetrievalRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	result, err := h.service.GetGlobalLeaderboard(ctx, payload.GameID, payload.Page, payload.PageSize)
	if err != nil {
		return []handlerwrapper.Result{{
			Topic: leaderboardevents.LeaderboardRetrievalFailedV1,
			Payload: &leaderboardevents.LeaderboardRetrievalFailedPayloadV1{
				GameID: payload.GameID,
				Code:   sharedtypes.ErrorCode(err),
				Reason: err.Error(),
			},
		}}, nil
	}

	if result.IsFailure() {
		failure := *result.Failure
		return []handlerwrapper.Result{{
			Topic: leaderboardevents.LeaderboardRetrievalFailedV1,
			Payload: &leaderboardevents.LeaderboardRetrievalFailedPayloadV1{
				GameID: payload.GameID,
				Code:   sharedtypes.ErrorCode(failure),
				Reason: failure.Error(),
			},
		}}, nil
	}

	page := *result.Success
	return []handlerwrapper.Result{{
		Topic: leaderboardevents.LeaderboardRetrievedV1,
		Payload: &leaderboardevents.LeaderboardRetrievedPayloadV1{
			GameID:   page.GameID,
			Page:     page.Page,
			PageSize: page.PageSize,
			Total:    page.Total,
			Entries:  page.Entries,
		},
	}}, nil
}
