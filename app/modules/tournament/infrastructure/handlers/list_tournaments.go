package tournamenthandlers

import (
	"context"

	tournamentevents "github.com/Arcadelis/arcadis-scoring/internal/events/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// HandleTournamentListRequested returns every registered tournament ID.
func (h *TournamentHandlers) HandleTournamentListRequested(
	ctx context.Context,
	payload *tournamentevents.TournamentListRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	result, err := h.service.ListTournaments(ctx)
	if err != nil {
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentListFailedV1,
			Payload: &tournamentevents.TournamentListFailedPayloadV1{
				Code:   sharedtypes.ErrorCode(err),
				Reason: err.Error(),
			},
		}}, nil
	}

	if result.IsFailure() {
		failure := *result.Failure
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentListFailedV1,
			Payload: &tournamentevents.TournamentListFailedPayloadV1{
				Code:   sharedtypes.ErrorCode(failure),
				Reason: failure.Error(),
			},
		}}, nil
	}

	return []handlerwrapper.Result{{
		Topic: tournamentevents.TournamentListRetrievedV1,
		Payload: &tournamentevents.TournamentListRetrievedPayloadV1{
			TournamentIDs: *result.Success,
		},
	}}, nil
}

// HandleTournamentListActiveRequested returns tournaments currently inside
// their window.
func (h *TournamentHandlers) HandleTournamentListActiveRequested(
	ctx context.Context,
	payload *tournamentevents.TournamentListActiveRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	result, err := h.service.ListActiveTournaments(ctx, payload.GameID)
	if err != nil {
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentListActiveFailedV1,
			Payload: &tournamentevents.TournamentListActiveFailedPayloadV1{
				GameID: payload.GameID,
				Code:   sharedtypes.ErrorCode(err),
				Reason: err.Error(),
			},
		}}, nil
	}

	if result.IsFailure() {
		failure := *result.Failure
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentListActiveFailedV1,
			Payload: &tournamentevents.TournamentListActiveFailedPayloadV1{
				GameID: payload.GameID,
				Code:   sharedtypes.ErrorCode(failure),
				Reason: failure.Error(),
			},
		}}, nil
	}

	summaries := *result.Success
	views := make([]tournamentevents.TournamentSummaryV1, len(summaries))
	for i, summary := range summaries {
		views[i] = tournamentevents.TournamentSummaryV1{
			TournamentID: summary.TournamentID,
			GameID:       summary.GameID,
			StartTime:    summary.StartTime,
			EndTime:      summary.EndTime,
			MaxEntries:   summary.MaxEntries,
			EntryCount:   summary.EntryCount,
			Status:       summary.Status,
		}
	}

	return []handlerwrapper.Result{{
		Topic: tournamentevents.TournamentListActiveRetrievedV1,
		Payload: &tournamentevents.TournamentListActiveRetrievedPayloadV1{
			GameID:      payload.GameID,
			Tournaments: views,
		},
	}}, nil
}
