package tournamentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// TournamentDBImpl implements TournamentDB using Bun.
type TournamentDBImpl struct {
	DB *bun.DB
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *TournamentDBImpl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.DB
	}
	return db
}

// CreateTournament inserts a new tournament row. The insert is a no-op on ID
// conflict so a duplicate create surfaces as ErrAlreadyExists instead of a
// driver error.
func (r *TournamentDBImpl) CreateTournament(ctx context.Context, db bun.IDB, tournament *Tournament) error {
	idb := r.resolveDB(db)
	if tournament.Entries == nil {
		tournament.Entries = []sharedtypes.RankedEntry{}
	}
	result, err := idb.NewInsert().
		Model(tournament).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert tournament: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// GetTournament loads one tournament by ID.
func (r *TournamentDBImpl) GetTournament(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*Tournament, error) {
	idb := r.resolveDB(db)
	tournament := new(Tournament)
	err := idb.NewSelect().
		Model(tournament).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return tournament, nil
}

// UpdateEntries replaces the entry document for a tournament.
func (r *TournamentDBImpl) UpdateEntries(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID, entries []sharedtypes.RankedEntry) error {
	idb := r.resolveDB(db)
	if entries == nil {
		entries = []sharedtypes.RankedEntry{}
	}
	result, err := idb.NewUpdate().
		Model((*Tournament)(nil)).
		Set("entries = ?", entries).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update tournament entries: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendToIndex appends a tournament ID to the single-row registry, creating
// the row on first use.
func (r *TournamentDBImpl) AppendToIndex(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) error {
	idb := r.resolveDB(db)

	index := new(TournamentIndex)
	err := idb.NewSelect().
		Model(index).
		Where("id = ?", indexRowID).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to load tournament index: %w", err)
	}

	index.ID = indexRowID
	index.TournamentIDs = append(index.TournamentIDs, id)
	index.UpdatedAt = time.Now()

	_, err = idb.NewInsert().
		Model(index).
		On("CONFLICT (id) DO UPDATE").
		Set("tournament_ids = EXCLUDED.tournament_ids").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to append to tournament index: %w", err)
	}
	return nil
}

// GetIndex returns the registered tournament IDs in creation order.
func (r *TournamentDBImpl) GetIndex(ctx context.Context, db bun.IDB) ([]sharedtypes.TournamentID, error) {
	idb := r.resolveDB(db)
	index := new(TournamentIndex)
	err := idb.NewSelect().
		Model(index).
		Where("id = ?", indexRowID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []sharedtypes.TournamentID{}, nil
		}
		return nil, fmt.Errorf("failed to load tournament index: %w", err)
	}
	return index.TournamentIDs, nil
}

// GetByIDs loads tournaments by key in one round trip. IDs with no row are
// silently absent from the result.
func (r *TournamentDBImpl) GetByIDs(ctx context.Context, db bun.IDB, ids []sharedtypes.TournamentID) ([]Tournament, error) {
	idb := r.resolveDB(db)
	if len(ids) == 0 {
		return []Tournament{}, nil
	}
	var tournaments []Tournament
	err := idb.NewSelect().
		Model(&tournaments).
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tournaments by IDs: %w", err)
	}
	return tournaments, nil
}
