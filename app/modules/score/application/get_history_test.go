package scoreservice

import (
	"context"
	"errors"
	"testing"
	"time"

	scoredb "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/repositories"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

func TestScoreService_GetPlayerHistory(t *testing.T) {
	now := time.Unix(150, 0).UTC()

	t.Run("returns stored records oldest first", func(t *testing.T) {
		deps := testDeps{
			tournaments: NewFakeTournamentRepo(),
			boards:      NewFakeLeaderboardRepo(),
			histories:   NewFakeHistoryRepo(),
			verifier:    NewFakeVerifier(),
		}
		deps.histories.GetHistoryFunc = func(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*scoredb.PlayerHistory, error) {
			return &scoredb.PlayerHistory{
				PlayerID: playerID,
				Records: []sharedtypes.ScoreRecord{
					{Score: 50, Timestamp: 110, GameID: "game-1", TournamentID: "t1"},
					{Score: 90, Timestamp: 120, GameID: "game-1", TournamentID: "t1"},
				},
			}, nil
		}

		s := newTestScoreService(deps, now)

		res, err := s.GetPlayerHistory(context.Background(), "A")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsSuccess() {
			t.Fatalf("expected success, got failure: %v", res.Failure)
		}
		view := *res.Success
		if view.PlayerID != "A" || len(view.Records) != 2 {
			t.Fatalf("unexpected view: %+v", view)
		}
		if view.Records[0].Timestamp != 110 || view.Records[1].Timestamp != 120 {
			t.Errorf("records must stay oldest first, got %+v", view.Records)
		}
	})

	t.Run("unknown player reads as empty history", func(t *testing.T) {
		deps := testDeps{
			tournaments: NewFakeTournamentRepo(),
			boards:      NewFakeLeaderboardRepo(),
			histories:   NewFakeHistoryRepo(),
			verifier:    NewFakeVerifier(),
		}

		s := newTestScoreService(deps, now)

		res, err := s.GetPlayerHistory(context.Background(), "ghost")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsSuccess() {
			t.Fatalf("expected success, got failure: %v", res.Failure)
		}
		view := *res.Success
		if view.PlayerID != "ghost" || len(view.Records) != 0 {
			t.Errorf("expected empty history, got %+v", view)
		}
	})

	t.Run("missing player id is invalid", func(t *testing.T) {
		deps := testDeps{
			tournaments: NewFakeTournamentRepo(),
			boards:      NewFakeLeaderboardRepo(),
			histories:   NewFakeHistoryRepo(),
			verifier:    NewFakeVerifier(),
		}

		s := newTestScoreService(deps, now)

		res, err := s.GetPlayerHistory(context.Background(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsFailure() {
			t.Fatal("expected failure result")
		}
		if !errors.Is(*res.Failure, sharedtypes.ErrInvalidParameters) {
			t.Errorf("expected ErrInvalidParameters, got %v", *res.Failure)
		}
		if len(deps.histories.Trace()) != 0 {
			t.Errorf("validation failures must not reach the repository, got %v", deps.histories.Trace())
		}
	})

	t.Run("repo failure surfaces as error", func(t *testing.T) {
		deps := testDeps{
			tournaments: NewFakeTournamentRepo(),
			boards:      NewFakeLeaderboardRepo(),
			histories:   NewFakeHistoryRepo(),
			verifier:    NewFakeVerifier(),
		}
		deps.histories.GetHistoryFunc = func(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID) (*scoredb.PlayerHistory, error) {
			return nil, errors.New("connection refused")
		}

		s := newTestScoreService(deps, now)

		if _, err := s.GetPlayerHistory(context.Background(), "A"); err == nil {
			t.Fatal("expected error but got nil")
		}
	})
}
