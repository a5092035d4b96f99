package tournamenthandlers

import (
	"context"

	tournamentevents "github.com/Arcadelis/arcadis-scoring/internal/events/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
)

// Handlers defines the typed event handlers for the tournament module.
type Handlers interface {
	HandleCreateTournamentRequested(ctx context.Context, payload *tournamentevents.TournamentCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleTournamentRetrievalRequested(ctx context.Context, payload *tournamentevents.TournamentRetrievalRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleTournamentLeaderboardRequested(ctx context.Context, payload *tournamentevents.TournamentLeaderboardRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleTournamentResultsRequested(ctx context.Context, payload *tournamentevents.TournamentResultsRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleTournamentListRequested(ctx context.Context, payload *tournamentevents.TournamentListRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleTournamentListActiveRequested(ctx context.Context, payload *tournamentevents.TournamentListActiveRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
