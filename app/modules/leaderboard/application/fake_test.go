package leaderboardservice

import (
	"context"

	leaderboarddb "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/repositories"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Leaderboard Repo
// ------------------------

type FakeLeaderboardRepo struct {
	trace []string

	GetLeaderboardFunc    func(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) (*leaderboarddb.GlobalLeaderboard, error)
	UpsertLeaderboardFunc func(ctx context.Context, db bun.IDB, board *leaderboarddb.GlobalLeaderboard) error
}

func NewFakeLeaderboardRepo() *FakeLeaderboardRepo {
	return &FakeLeaderboardRepo{
		trace: []string{},
	}
}

func (f *FakeLeaderboardRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeLeaderboardRepo) GetLeaderboard(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) (*leaderboarddb.GlobalLeaderboard, error) {
	f.record("GetLeaderboard")
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx, db, gameID)
	}
	return nil, leaderboarddb.ErrNotFound
}

func (f *FakeLeaderboardRepo) UpsertLeaderboard(ctx context.Context, db bun.IDB, board *leaderboarddb.GlobalLeaderboard) error {
	f.record("UpsertLeaderboard")
	if f.UpsertLeaderboardFunc != nil {
		return f.UpsertLeaderboardFunc(ctx, db, board)
	}
	return nil
}

// --- Accessors for assertions ---

func (f *FakeLeaderboardRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ leaderboarddb.LeaderboardDB = (*FakeLeaderboardRepo)(nil)
