package tournamenthandlers

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	tournamentservice "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/application"
	tournamentevents "github.com/Arcadelis/arcadis-scoring/internal/events/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

func TestTournamentHandlers_HandleTournamentResultsRequested(t *testing.T) {
	tests := []struct {
		name      string
		setupFake func(*FakeService)
		wantTopic string
		wantCode  string
	}{
		{
			name: "ended tournament returns standings",
			setupFake: func(f *FakeService) {
				f.GetTournamentResultsFunc = func(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[*tournamentservice.TournamentResults, error], error) {
					return results.SuccessResult[*tournamentservice.TournamentResults, error](&tournamentservice.TournamentResults{
						TournamentID: id,
						GameID:       "game-1",
						Results: []sharedtypes.RankedEntry{
							{PlayerID: "a", Score: 90, Rank: 1},
						},
					}), nil
				}
			},
			wantTopic: tournamentevents.TournamentResultsRetrievedV1,
		},
		{
			name: "running tournament maps to tournament_not_active",
			setupFake: func(f *FakeService) {
				f.GetTournamentResultsFunc = func(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[*tournamentservice.TournamentResults, error], error) {
					return results.FailureResult[*tournamentservice.TournamentResults, error](
						fmt.Errorf("%w: not final", sharedtypes.ErrTournamentNotActive)), nil
				}
			},
			wantTopic: tournamentevents.TournamentResultsFailedV1,
			wantCode:  "tournament_not_active",
		},
		{
			name: "unknown tournament maps to tournament_not_found",
			setupFake: func(f *FakeService) {
				f.GetTournamentResultsFunc = func(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[*tournamentservice.TournamentResults, error], error) {
					return results.FailureResult[*tournamentservice.TournamentResults, error](
						fmt.Errorf("%w: t1", sharedtypes.ErrTournamentNotFound)), nil
				}
			},
			wantTopic: tournamentevents.TournamentResultsFailedV1,
			wantCode:  "tournament_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeSvc := NewFakeService()
			tt.setupFake(fakeSvc)

			h := &TournamentHandlers{service: fakeSvc, logger: slog.Default()}

			got, err := h.HandleTournamentResultsRequested(context.Background(), &tournamentevents.TournamentResultsRequestedPayloadV1{TournamentID: "t1"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 result, got %d", len(got))
			}
			if got[0].Topic != tt.wantTopic {
				t.Errorf("topic = %s, want %s", got[0].Topic, tt.wantTopic)
			}
			if tt.wantCode != "" {
				failed, ok := got[0].Payload.(*tournamentevents.TournamentResultsFailedPayloadV1)
				if !ok {
					t.Fatalf("unexpected payload type %T", got[0].Payload)
				}
				if failed.Code != tt.wantCode {
					t.Errorf("code = %s, want %s", failed.Code, tt.wantCode)
				}
			}
		})
	}
}

func TestTournamentHandlers_HandleTournamentLeaderboardRequested(t *testing.T) {
	fakeSvc := NewFakeService()
	fakeSvc.GetTournamentLeaderboardFunc = func(ctx context.Context, id sharedtypes.TournamentID, page, pageSize int) (results.OperationResult[*tournamentservice.LeaderboardPage, error], error) {
		return results.SuccessResult[*tournamentservice.LeaderboardPage, error](&tournamentservice.LeaderboardPage{
			TournamentID: id,
			Page:         page,
			PageSize:     pageSize,
			Total:        2,
			Entries: []sharedtypes.RankedEntry{
				{PlayerID: "a", Score: 90, Rank: 1},
				{PlayerID: "b", Score: 80, Rank: 2},
			},
		}), nil
	}

	h := &TournamentHandlers{service: fakeSvc, logger: slog.Default()}

	got, err := h.HandleTournamentLeaderboardRequested(context.Background(), &tournamentevents.TournamentLeaderboardRequestedPayloadV1{
		TournamentID: "t1",
		Page:         0,
		PageSize:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	retrieved, ok := got[0].Payload.(*tournamentevents.TournamentLeaderboardRetrievedPayloadV1)
	if !ok {
		t.Fatalf("unexpected payload type %T", got[0].Payload)
	}
	if retrieved.Total != 2 || len(retrieved.Entries) != 2 {
		t.Errorf("unexpected page: %+v", retrieved)
	}
}
