package scoredb

import (
	"context"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// HistoryDB is the player history repository contract. Methods accept a
// bun.IDB so the submission orchestration can fold history writes into its
// transaction; a nil db falls back to the repository's own connection.
type HistoryDB interface {
	// GetHistory loads one player's history document, or ErrNotFound.
	GetHistory(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*PlayerHistory, error)
	// UpsertHistory writes the history document, creating the player's row
	// on first submission.
	UpsertHistory(ctx context.Context, db bun.IDB, history *PlayerHistory) error
}
