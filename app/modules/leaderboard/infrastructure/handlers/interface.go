package leaderboardhandlers

import (
	"context"

	leaderboardevents "github.com/Arcadelis/arcadis-scoring/internal/events/leaderboard"
	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
)

// Handlers defines the typed event handlers for the leaderboard module.
type Handlers interface {
	HandleLeaderboardRetrievalRequested(ctx context.Context, payload *leaderboardevents.LeaderboardRetrievalRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
