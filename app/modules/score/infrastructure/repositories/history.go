package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// HistoryDBImpl implements HistoryDB using Bun.
type HistoryDBImpl struct {
	DB *bun.DB
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *HistoryDBImpl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.DB
	}
	return db
}

// GetHistory loads one player's history document.
func (r *HistoryDBImpl) GetHistory(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*PlayerHistory, error) {
	idb := r.resolveDB(db)
	history := new(PlayerHistory)
	err := idb.NewSelect().
		Model(history).
		Where("player_id = ?", playerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get player history: %w", err)
	}
	return history, nil
}

// UpsertHistory writes the history document, creating the player's row on
// first submission.
func (r *HistoryDBImpl) UpsertHistory(ctx context.Context, db bun.IDB, history *PlayerHistory) error {
	idb := r.resolveDB(db)
	if history.Records == nil {
		history.Records = []sharedtypes.ScoreRecord{}
	}
	history.UpdatedAt = time.Now()
	_, err := idb.NewInsert().
		Model(history).
		On("CONFLICT (player_id) DO UPDATE").
		Set("records = EXCLUDED.records").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert player history: %w", err)
	}
	return nil
}
