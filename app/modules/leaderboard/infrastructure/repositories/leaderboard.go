package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// LeaderboardDBImpl implements LeaderboardDB using Bun.
type LeaderboardDBImpl struct {
	DB *bun.DB
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *LeaderboardDBImpl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.DB
	}
	return db
}

// GetLeaderboard loads one game's board document.
func (r *LeaderboardDBImpl) GetLeaderboard(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) (*GlobalLeaderboard, error) {
	idb := r.resolveDB(db)
	board := new(GlobalLeaderboard)
	err := idb.NewSelect().
		Model(board).
		Where("game_id = ?", gameID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return board, nil
}

// UpsertLeaderboard writes the board document, creating the game's row on its
// first submission.
func (r *LeaderboardDBImpl) UpsertLeaderboard(ctx context.Context, db bun.IDB, board *GlobalLeaderboard) error {
	idb := r.resolveDB(db)
	if board.Entries == nil {
		board.Entries = []sharedtypes.RankedEntry{}
	}
	board.UpdatedAt = time.Now()
	_, err := idb.NewInsert().
		Model(board).
		On("CONFLICT (game_id) DO UPDATE").
		Set("entries = EXCLUDED.entries").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert leaderboard: %w", err)
	}
	return nil
}
