package leaderboarddb

import (
	"context"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// LeaderboardDB is the global leaderboard repository contract. Methods accept
// a bun.IDB so callers can pass a transaction; a nil db falls back to the
// repository's own connection.
type LeaderboardDB interface {
	// GetLeaderboard returns a game's board document, or ErrNotFound.
	GetLeaderboard(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) (*GlobalLeaderboard, error)
	// UpsertLeaderboard writes the board document, creating the game's row on
	// first submission.
	UpsertLeaderboard(ctx context.Context, db bun.IDB, board *GlobalLeaderboard) error
}
