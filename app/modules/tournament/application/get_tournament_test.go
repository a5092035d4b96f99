package tournamentservice

import (
	"context"
	"errors"
	"testing"
	"time"

	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/google/go-cmp/cmp"
	"github.com/uptrace/bun"
)

func storedTournament() *tournamentdb.Tournament {
	return &tournamentdb.Tournament{
		ID:         "t1",
		GameID:     "game-1",
		StartTime:  100,
		EndTime:    200,
		MaxEntries: 10,
		Entries: []sharedtypes.RankedEntry{
			{PlayerID: "a", Score: 90, Rank: 1},
			{PlayerID: "b", Score: 80, Rank: 2},
			{PlayerID: "c", Score: 70, Rank: 3},
		},
	}
}

func TestTournamentService_GetTournament(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		setupFake  func(*FakeTournamentRepo)
		wantStatus sharedtypes.TournamentStatus
		wantFail   error
	}{
		{
			name: "upcoming before window",
			now:  time.Unix(50, 0).UTC(),
			setupFake: func(f *FakeTournamentRepo) {
				f.GetTournamentFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdb.Tournament, error) {
					return storedTournament(), nil
				}
			},
			wantStatus: sharedtypes.TournamentUpcoming,
		},
		{
			name: "active at window start",
			now:  time.Unix(100, 0).UTC(),
			setupFake: func(f *FakeTournamentRepo) {
				f.GetTournamentFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdb.Tournament, error) {
					return storedTournament(), nil
				}
			},
			wantStatus: sharedtypes.TournamentActive,
		},
		{
			name: "active at window end",
			now:  time.Unix(200, 0).UTC(),
			setupFake: func(f *FakeTournamentRepo) {
				f.GetTournamentFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdb.Tournament, error) {
					return storedTournament(), nil
				}
			},
			wantStatus: sharedtypes.TournamentActive,
		},
		{
			name: "ended after window",
			now:  time.Unix(201, 0).UTC(),
			setupFake: func(f *FakeTournamentRepo) {
				f.GetTournamentFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdb.Tournament, error) {
					return storedTournament(), nil
				}
			},
			wantStatus: sharedtypes.TournamentEnded,
		},
		{
			name:     "unknown tournament",
			now:      time.Unix(150, 0).UTC(),
			wantFail: sharedtypes.ErrTournamentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := NewFakeTournamentRepo()
			if tt.setupFake != nil {
				tt.setupFake(fakeRepo)
			}

			s := newTestService(fakeRepo, tt.now)

			res, err := s.GetTournament(context.Background(), "t1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantFail != nil {
				if !res.IsFailure() {
					t.Fatal("expected failure result")
				}
				if !errors.Is(*res.Failure, tt.wantFail) {
					t.Errorf("expected %v, got %v", tt.wantFail, *res.Failure)
				}
				return
			}

			if !res.IsSuccess() {
				t.Fatalf("expected success, got failure: %v", res.Failure)
			}
			if (*res.Success).Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, (*res.Success).Status)
			}
		})
	}
}

func TestTournamentService_GetTournamentLeaderboard(t *testing.T) {
	now := time.Unix(150, 0).UTC()

	tests := []struct {
		name        string
		page        int
		pageSize    int
		wantEntries []sharedtypes.RankedEntry
	}{
		{
			name:     "first page",
			page:     0,
			pageSize: 2,
			wantEntries: []sharedtypes.RankedEntry{
				{PlayerID: "a", Score: 90, Rank: 1},
				{PlayerID: "b", Score: 80, Rank: 2},
			},
		},
		{
			name:     "short final page",
			page:     1,
			pageSize: 2,
			wantEntries: []sharedtypes.RankedEntry{
				{PlayerID: "c", Score: 70, Rank: 3},
			},
		},
		{
			name:        "page past the data",
			page:        5,
			pageSize:    2,
			wantEntries: []sharedtypes.RankedEntry{},
		},
		{
			name:        "zero page size degrades to empty",
			page:        0,
			pageSize:    0,
			wantEntries: []sharedtypes.RankedEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := NewFakeTournamentRepo()
			fakeRepo.GetTournamentFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdb.Tournament, error) {
				return storedTournament(), nil
			}

			s := newTestService(fakeRepo, now)

			res, err := s.GetTournamentLeaderboard(context.Background(), "t1", tt.page, tt.pageSize)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.IsSuccess() {
				t.Fatalf("expected success, got failure: %v", res.Failure)
			}

			pageView := *res.Success
			if pageView.Total != 3 {
				t.Errorf("expected total 3, got %d", pageView.Total)
			}
			if diff := cmp.Diff(tt.wantEntries, pageView.Entries); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTournamentService_GetTournamentResults(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		wantFail error
	}{
		{
			name:     "before window results are not final",
			now:      time.Unix(50, 0).UTC(),
			wantFail: sharedtypes.ErrTournamentNotActive,
		},
		{
			name:     "during window results are not final",
			now:      time.Unix(150, 0).UTC(),
			wantFail: sharedtypes.ErrTournamentNotActive,
		},
		{
			name:     "at window end results are still not final",
			now:      time.Unix(200, 0).UTC(),
			wantFail: sharedtypes.ErrTournamentNotActive,
		},
		{
			name: "after window results are readable",
			now:  time.Unix(201, 0).UTC(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := NewFakeTournamentRepo()
			fakeRepo.GetTournamentFunc = func(ctx context.Context, db bun.IDB, id sharedtypes.TournamentID) (*tournamentdb.Tournament, error) {
				return storedTournament(), nil
			}

			s := newTestService(fakeRepo, tt.now)

			res, err := s.GetTournamentResults(context.Background(), "t1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantFail != nil {
				if !res.IsFailure() {
					t.Fatal("expected failure result")
				}
				if !errors.Is(*res.Failure, tt.wantFail) {
					t.Errorf("expected %v, got %v", tt.wantFail, *res.Failure)
				}
				return
			}

			if !res.IsSuccess() {
				t.Fatalf("expected success, got failure: %v", res.Failure)
			}
			resultsView := *res.Success
			if len(resultsView.Results) != 3 {
				t.Fatalf("expected 3 entries, got %d", len(resultsView.Results))
			}
			for i, entry := range resultsView.Results {
				if entry.Rank != i+1 {
					t.Errorf("entry %d: expected rank %d, got %d", i, i+1, entry.Rank)
				}
			}
		})
	}
}
