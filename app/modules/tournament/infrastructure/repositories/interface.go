package tournamentdb

import (
	"context"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// TournamentDB is the persistence interface for tournament documents. Every
// method accepts a bun.IDB so callers can run several repository calls inside
// one transaction; passing nil uses the repository's default connection.
type TournamentDB interface {
	// CreateTournament inserts a new tournament. Returns ErrAlreadyExists
	// when a tournament with the same ID is present.
	CreateTournament(ctx context.Context, db bun.IDB, tournament *Tournament) error

	// GetTournament loads a tournament by ID. Returns ErrNotFound when
	// absent.
	GetTournament(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*Tournament, error)

	// UpdateEntries replaces the stored entry document for a tournament.
	UpdateEntries(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID, entries []sharedtypes.RankedEntry) error

	// AppendToIndex records a tournament ID in the global registry.
	AppendToIndex(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) error

	// GetIndex returns every tournament ID ever registered, oldest first.
	GetIndex(ctx context.Context, db bun.IDB) ([]sharedtypes.TournamentID, error)

	// GetByIDs loads the tournaments for the given IDs. Missing IDs are
	// skipped, not errors.
	GetByIDs(ctx context.Context, db bun.IDB, ids []sharedtypes.TournamentID) ([]Tournament, error)
}
