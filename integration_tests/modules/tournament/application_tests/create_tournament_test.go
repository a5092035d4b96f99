package tournamentintegrationtests

import (
	"errors"
	"testing"
	"time"

	tournamentservice "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/application"
	"github.com/Arcadelis/arcadis-scoring/integration_tests/testutils"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

func TestCreateTournamentIntegration(t *testing.T) {
	deps := SetupTestTournamentService(t)
	generator := testutils.NewTestDataGenerator()

	now := time.Now().UTC()
	deps.Clock.NowFn = func() time.Time { return now }

	t.Run("Successful creation persists tournament and index entry", func(t *testing.T) {
		tournamentID := generator.GenerateTournamentID()
		gameID := generator.GenerateGameID()
		start, end := testutils.ActiveWindow(now)

		result, err := deps.Service.CreateTournament(deps.Ctx, tournamentservice.CreateTournamentInput{
			TournamentID: tournamentID,
			GameID:       gameID,
			StartTime:    start,
			EndTime:      end,
			MaxEntries:   50,
		})
		if err != nil {
			t.Fatalf("CreateTournament returned error: %v", err)
		}
		if !result.IsSuccess() {
			t.Fatalf("Expected success, got failure: %v", *result.Failure)
		}

		info := *result.Success
		if info.TournamentID != tournamentID {
			t.Errorf("Expected tournament ID %s, got %s", tournamentID, info.TournamentID)
		}
		if info.Status != sharedtypes.TournamentActive {
			t.Errorf("Expected active status, got %s", info.Status)
		}
		if len(info.Entries) != 0 {
			t.Errorf("Expected empty entries, got %d", len(info.Entries))
		}

		stored, err := deps.DB.GetTournament(deps.Ctx, nil, tournamentID)
		if err != nil {
			t.Fatalf("Failed to load stored tournament: %v", err)
		}
		if stored.GameID != gameID {
			t.Errorf("Expected stored game ID %s, got %s", gameID, stored.GameID)
		}
		if stored.MaxEntries != 50 {
			t.Errorf("Expected stored max entries 50, got %d", stored.MaxEntries)
		}

		index, err := deps.DB.GetIndex(deps.Ctx, nil)
		if err != nil {
			t.Fatalf("Failed to load index: %v", err)
		}
		found := false
		for _, id := range index {
			if id == tournamentID {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected index to contain %s, got %v", tournamentID, index)
		}
	})

	t.Run("Duplicate tournament ID is rejected", func(t *testing.T) {
		tournamentID := generator.GenerateTournamentID()
		start, end := testutils.ActiveWindow(now)
		input := tournamentservice.CreateTournamentInput{
			TournamentID: tournamentID,
			GameID:       generator.GenerateGameID(),
			StartTime:    start,
			EndTime:      end,
			MaxEntries:   10,
		}

		first, err := deps.Service.CreateTournament(deps.Ctx, input)
		if err != nil || !first.IsSuccess() {
			t.Fatalf("First creation should succeed: result=%+v err=%v", first, err)
		}

		second, err := deps.Service.CreateTournament(deps.Ctx, input)
		if err != nil {
			t.Fatalf("Duplicate creation returned infrastructure error: %v", err)
		}
		if !second.IsFailure() {
			t.Fatal("Expected duplicate creation to fail")
		}
		if !errors.Is(*second.Failure, sharedtypes.ErrTournamentExists) {
			t.Errorf("Expected ErrTournamentExists, got %v", *second.Failure)
		}
	})

	t.Run("Invalid window is rejected without persisting", func(t *testing.T) {
		tournamentID := generator.GenerateTournamentID()
		start, end := testutils.ActiveWindow(now)

		result, err := deps.Service.CreateTournament(deps.Ctx, tournamentservice.CreateTournamentInput{
			TournamentID: tournamentID,
			GameID:       generator.GenerateGameID(),
			StartTime:    end,
			EndTime:      start,
			MaxEntries:   10,
		})
		if err != nil {
			t.Fatalf("CreateTournament returned error: %v", err)
		}
		if !result.IsFailure() {
			t.Fatal("Expected inverted window to fail")
		}
		if !errors.Is(*result.Failure, sharedtypes.ErrInvalidParameters) {
			t.Errorf("Expected ErrInvalidParameters, got %v", *result.Failure)
		}

		if _, err := deps.DB.GetTournament(deps.Ctx, nil, tournamentID); err == nil {
			t.Error("Rejected tournament should not be persisted")
		}
	})

	t.Run("Capacity outside bounds is rejected", func(t *testing.T) {
		start, end := testutils.ActiveWindow(now)
		for _, capacity := range []int{0, -1, tournamentservice.MaxTournamentCapacity + 1} {
			result, err := deps.Service.CreateTournament(deps.Ctx, tournamentservice.CreateTournamentInput{
				TournamentID: generator.GenerateTournamentID(),
				GameID:       generator.GenerateGameID(),
				StartTime:    start,
				EndTime:      end,
				MaxEntries:   capacity,
			})
			if err != nil {
				t.Fatalf("CreateTournament returned error for capacity %d: %v", capacity, err)
			}
			if !result.IsFailure() || !errors.Is(*result.Failure, sharedtypes.ErrInvalidParameters) {
				t.Errorf("Expected ErrInvalidParameters for capacity %d", capacity)
			}
		}
	})
}
