package tournamenthandlers

import (
	"context"

	tournamentevents "github.com/Arcadelis/arcadis-scoring/internal/events/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// HandleTournamentRetrievalRequested returns the full tournament document.
func (h *TournamentHandlers) HandleTournamentRetrievalRequested(
	ctx context.Context,
	payload *tournamentevents.TournamentRetrievalRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	result, err := h.service.GetTournament(ctx, payload.TournamentID)
	if err != nil {
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentRetrievalFailedV1,
			Payload: &tournamentevents.TournamentRetrievalFailedPayloadV1{
				TournamentID: payload.TournamentID,
				Code:         sharedtypes.ErrorCode(err),
				Reason:       err.Error(),
			},
		}}, nil
	}

	if result.IsFailure() {
		failure := *result.Failure
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentRetrievalFailedV1,
			Payload: &tournamentevents.TournamentRetrievalFailedPayloadV1{
				TournamentID: payload.TournamentID,
				Code:         sharedtypes.ErrorCode(failure),
				Reason:       failure.Error(),
			},
		}}, nil
	}

	info := *result.Success
	return []handlerwrapper.Result{{
		Topic: tournamentevents.TournamentRetrievedV1,
		Payload: &tournamentevents.TournamentRetrievedPayloadV1{
			Tournament: tournamentevents.TournamentViewV1{
				TournamentID: info.TournamentID,
				GameID:       info.GameID,
				StartTime:    info.StartTime,
				EndTime:      info.EndTime,
				MaxEntries:   info.MaxEntries,
				Status:       info.Status,
				Entries:      info.Entries,
			},
		},
	}}, nil
}

// HandleTournamentLeaderboardRequested returns one page of current
// standings.
func (h *TournamentHandlers) HandleTournamentLeaderboardRequested(
	ctx context.Context,
	payload *tournamentevents.TournamentLeaderboardRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	result, err := h.service.GetTournamentLeaderboard(ctx, payload.TournamentID, payload.Page, payload.PageSize)
	if err != nil {
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentLeaderboardFailedV1,
			Payload: &tournamentevents.TournamentLeaderboardFailedPayloadV1{
				TournamentID: payload.TournamentID,
				Code:         sharedtypes.ErrorCode(err),
				Reason:       err.Error(),
			},
		}}, nil
	}

	if result.IsFailure() {
		failure := *result.Failure
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentLeaderboardFailedV1,
			Payload: &tournamentevents.TournamentLeaderboardFailedPayloadV1{
				TournamentID: payload.TournamentID,
				Code:         sharedtypes.ErrorCode(failure),
				Reason:       failure.Error(),
			},
		}}, nil
	}

	page := *result.Success
	return []handlerwrapper.Result{{
		Topic: tournamentevents.TournamentLeaderboardRetrievedV1,
		Payload: &tournamentevents.TournamentLeaderboardRetrievedPayloadV1{
			TournamentID: page.TournamentID,
			Page:         page.Page,
			PageSize:     page.PageSize,
			Total:        page.Total,
			Entries:      page.Entries,
		},
	}}, nil
}

// HandleTournamentResultsRequested returns final standings of an ended
// tournament.
func (h *TournamentHandlers) HandleTournamentResultsRequested(
	ctx context.Context,
	payload *tournamentevents.TournamentResultsRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	result, err := h.service.GetTournamentResults(ctx, payload.TournamentID)
	if err != nil {
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentResultsFailedV1,
			Payload: &tournamentevents.TournamentResultsFailedPayloadV1{
				TournamentID: payload.TournamentID,
				Code:         sharedtypes.ErrorCode(err),
				Reason:       err.Error(),
			},
		}}, nil
	}

	if result.IsFailure() {
		failure := *result.Failure
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentResultsFailedV1,
			Payload: &tournamentevents.TournamentResultsFailedPayloadV1{
				TournamentID: payload.TournamentID,
				Code:         sharedtypes.ErrorCode(failure),
				Reason:       failure.Error(),
			},
		}}, nil
	}

	resultsView := *result.Success
	return []handlerwrapper.Result{{
		Topic: tournamentevents.TournamentResultsRetrievedV1,
		Payload: &tournamentevents.TournamentResultsRetrievedPayloadV1{
			TournamentID: resultsView.TournamentID,
			GameID:       resultsView.GameID,
			Results:      resultsView.Results,
		},
	}}, nil
}
