package leaderboardservice

import (
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// LeaderboardPage is one page of a game's global board.
type LeaderboardPage struct {
	GameID   sharedtypes.GameID
	Page     int
	PageSize int
	Total    int
	Entries  []sharedtypes.RankedEntry
}
