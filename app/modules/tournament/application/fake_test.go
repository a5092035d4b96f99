package tournamentservice

import (
	"context"
	"time"

	tournamentqueue "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/queue"
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
	return &FakeTournamentRepo{
		trace: []string{},
	}
}

func (f *FakeTournamentRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

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

// --- Accessors for assertions ---

func (f *FakeTournamentRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Ensure the fake actually satisfies the interface
var _ tournamentdb.TournamentDB = (*FakeTournamentRepo)(nil)

// ------------------------
// Fake Queue Service
// ------------------------

type FakeQueueService struct {
	trace []string

	ScheduleStartFunc func(ctx context.Context, tournamentID sharedtypes.TournamentID, gameID sharedtypes.GameID, startTime time.Time) error
	ScheduleEndFunc   func(ctx context.Context, tournamentID sharedtypes.TournamentID, gameID sharedtypes.GameID, endTime time.Time) error
}

func NewFakeQueueService() *FakeQueueService {
	return &FakeQueueService{trace: []string{}}
}

func (f *FakeQueueService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeQueueService) ScheduleTournamentStart(ctx context.Context, tournamentID sharedtypes.TournamentID, gameID sharedtypes.GameID, startTime time.Time) error {
	f.record("ScheduleTournamentStart")
	if f.ScheduleStartFunc != nil {
		return f.ScheduleStartFunc(ctx, tournamentID, gameID, startTime)
	}
	return nil
}

func (f *FakeQueueService) ScheduleTournamentEnd(ctx context.Context, tournamentID sharedtypes.TournamentID, gameID sharedtypes.GameID, endTime time.Time) error {
	f.record("ScheduleTournamentEnd")
	if f.ScheduleEndFunc != nil {
		return f.ScheduleEndFunc(ctx, tournamentID, gameID, endTime)
	}
	return nil
}

func (f *FakeQueueService) CancelTournamentJobs(ctx context.Context, tournamentID sharedtypes.TournamentID) error {
	f.record("CancelTournamentJobs")
	return nil
}

func (f *FakeQueueService) GetScheduledJobs(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]tournamentqueue.JobInfo, error) {
	f.record("GetScheduledJobs")
	return nil, nil
}

func (f *FakeQueueService) HealthCheck(ctx context.Context) error { return nil }
func (f *FakeQueueService) Start(ctx context.Context) error       { return nil }
func (f *FakeQueueService) Stop(ctx context.Context) error        { return nil }

func (f *FakeQueueService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ tournamentqueue.QueueService = (*FakeQueueService)(nil)
