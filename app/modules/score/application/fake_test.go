package scoreservice

import (
	"context"

	leaderboarddb "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/repositories"
	scoredb "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/repositories"
	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Tournament Repo
// ------------------------

type FakeTournamentRepo struct {
	trace []string

	CreateTournamentFunc func(ctx context.Context, db bun.IDB, tournament *tournamentdb.Tournament) error
	GetTournamentFunc    func(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdb.Tournament, error)
	UpdateEntriesFunc    func(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID, entries []sharedtypes.RankedEntry) error
	AppendToIndexFunc    func(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) error
	GetIndexFunc         func(ctx context.Context, db bun.IDB) ([]sharedtypes.TournamentID, error)
	GetByIDsFunc         func(ctx context.Context, db bun.IDB, ids []sharedtypes.TournamentID) ([]tournamentdb.Tournament, error)
}

func NewFakeTournamentRepo() *FakeTournamentRepo {
	return &FakeTournamentRepo{trace: []string{}}
}

func (f *FakeTournamentRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeTournamentRepo) CreateTournament(ctx context.Context, db bun.IDB, tournament *tournamentdb.Tournament) error {
	f.record("CreateTournament")
	if f.CreateTournamentFunc != nil {
		return f.CreateTournamentFunc(ctx, db, tournament)
	}
	return nil
}

func (f *FakeTournamentRepo) GetTournament(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdb.Tournament, error) {
	f.record("GetTournament")
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, db, id)
	}
	return nil, tournamentdb.ErrNotFound
}

func (f *FakeTournamentRepo) UpdateEntries(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID, entries []sharedtypes.RankedEntry) error {
	f.record("UpdateEntries")
	if f.UpdateEntriesFunc != nil {
		return f.UpdateEntriesFunc(ctx, db, id, entries)
	}
	return nil
}

func (f *FakeTournamentRepo) AppendToIndex(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) error {
	f.record("AppendToIndex")
	if f.AppendToIndexFunc != nil {
		return f.AppendToIndexFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeTournamentRepo) GetIndex(ctx context.Context, db bun.IDB) ([]sharedtypes.TournamentID, error) {
	f.record("GetIndex")
	if f.GetIndexFunc != nil {
		return f.GetIndexFunc(ctx, db)
	}
	return []sharedtypes.TournamentID{}, nil
}

func (f *FakeTournamentRepo) GetByIDs(ctx context.Context, db bun.IDB, ids []sharedtypes.TournamentID) ([]tournamentdb.Tournament, error) {
	f.record("GetByIDs")
	if f.GetByIDsFunc != nil {
		return f.GetByIDsFunc(ctx, db, ids)
	}
	return []tournamentdb.Tournament{}, nil
}

func (f *FakeTournamentRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ tournamentdb.TournamentDB = (*FakeTournamentRepo)(nil)

// ------------------------
// Fake Leaderboard Repo
// ------------------------

type FakeLeaderboardRepo struct {
	trace []string

	GetLeaderboardFunc    func(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID) (*leaderboarddb.GlobalLeaderboard, error)
	UpsertLeaderboardFunc func(ctx context.Context, db bun.IDB, board *leaderboarddb.GlobalLeaderboard) error
}

func NewFakeLeaderboardRepo() *FakeLeaderboardRepo {
	return &FakeLeaderboardRepo{trace: []string{}}
}

func (f *FakeLeaderboardRepo) record(step string) {
	f.trace = append(f.trace, step)
}

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

func (f *FakeLeaderboardRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ leaderboarddb.LeaderboardDB = (*FakeLeaderboardRepo)(nil)

// ------------------------
// Fake History Repo
// ------------------------

type FakeHistoryRepo struct {
	trace []string

	GetHistoryFunc    func(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*scoredb.PlayerHistory, error)
	UpsertHistoryFunc func(ctx context.Context, db bun.IDB, history *scoredb.PlayerHistory) error
}

func NewFakeHistoryRepo() *FakeHistoryRepo {
	return &FakeHistoryRepo{trace: []string{}}
}

func (f *FakeHistoryRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeHistoryRepo) GetHistory(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*scoredb.PlayerHistory, error) {
	f.record("GetHistory")
	if f.GetHistoryFunc != nil {
		return f.GetHistoryFunc(ctx, db, playerID)
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeHistoryRepo) UpsertHistory(ctx context.Context, db bun.IDB, history *scoredb.PlayerHistory) error {
	f.record("UpsertHistory")
	if f.UpsertHistoryFunc != nil {
		return f.UpsertHistoryFunc(ctx, db, history)
	}
	return nil
}

func (f *FakeHistoryRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ scoredb.HistoryDB = (*FakeHistoryRepo)(nil)

// ------------------------
// Fake Submitter Verifier
// ------------------------

type FakeVerifier struct {
	trace []string

	VerifySubmitterFunc func(ctx context.Context, token string, playerID sharedtypes.PlayerID) error
}

func NewFakeVerifier() *FakeVerifier {
	return &FakeVerifier{trace: []string{}}
}

func (f *FakeVerifier) VerifySubmitter(ctx context.Context, token string, playerID sharedtypes.PlayerID) error {
	f.trace = append(f.trace, "VerifySubmitter")
	if f.VerifySubmitterFunc != nil {
		return f.VerifySubmitterFunc(ctx, token, playerID)
	}
	return nil
}

func (f *FakeVerifier) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ SubmitterVerifier = (*FakeVerifier)(nil)
