package tournamenthandlers

import (
	"context"

	tournamentservice "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/application"
	tournamentevents "github.com/Arcadelis/arcadis-scoring/internal/events/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// HandleCreateTournamentRequested registers a new tournament and announces
// it once the write has committed.
func (h *TournamentHandlers) HandleCreateTournamentRequested(
	ctx context.Context,
	payload *tournamentevents.TournamentCreateRequestedPayloadV1,
) ([]handlerwrapper.Result, error) {
	result, err := h.service.CreateTournament(ctx, tournamentservice.CreateTournamentInput{
		TournamentID: payload.TournamentID,
		GameID:       payload.GameID,
		StartTime:    payload.StartTime,
		EndTime:      payload.EndTime,
		MaxEntries:   payload.MaxEntries,
	})
	if err != nil {
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentCreationFailedV1,
			Payload: &tournamentevents.TournamentCreationFailedPayloadV1{
				TournamentID: payload.TournamentID,
				GameID:       payload.GameID,
				Code:         sharedtypes.ErrorCode(err),
				Reason:       err.Error(),
			},
		}}, nil
	}

	if result.IsFailure() {
		failure := *result.Failure
		return []handlerwrapper.Result{{
			Topic: tournamentevents.TournamentCreationFailedV1,
			Payload: &tournamentevents.TournamentCreationFailedPayloadV1{
				TournamentID: payload.TournamentID,
				GameID:       payload.GameID,
				Code:         sharedtypes.ErrorCode(failure),
				Reason:       failure.Error(),
			},
		}}, nil
	}

	info := *result.Success
	return []handlerwrapper.Result{{
		Topic: tournamentevents.TournamentCreatedV1,
		Payload: &tournamentevents.TournamentCreatedPayloadV1{
			TournamentID: info.TournamentID,
			GameID:       info.GameID,
		},
	}}, nil
}
