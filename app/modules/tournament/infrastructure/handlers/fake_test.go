package tournamenthandlers

import (
	"context"

	tournamentservice "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/application"
	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// FakeService implements tournamentservice.Service for handler tests.
type FakeService struct {
	CreateTournamentFunc         func(ctx context.Context, input tournamentservice.CreateTournamentInput) (results.OperationResult[*tournamentservice.TournamentInfo, error], error)
	GetTournamentFunc            func(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[*tournamentservice.TournamentInfo, error], error)
	GetTournamentLeaderboardFunc func(ctx context.Context, id sharedtypes.TournamentID, page, pageSize int) (results.OperationResult[*tournamentservice.LeaderboardPage, error], error)
	GetTournamentResultsFunc     func(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[*tournamentservice.TournamentResults, error], error)
	ListTournamentsFunc          func(ctx context.Context) (results.OperationResult[[]sharedtypes.TournamentID, error], error)
	ListActiveTournamentsFunc    func(ctx context.Context, gameID sharedtypes.GameID) (results.OperationResult[[]tournamentservice.TournamentSummary, error], error)
	ExportResultsFunc            func(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[[]byte, error], error)
}

func NewFakeService() *FakeService {
	return &FakeService{}
}

func (f *FakeService) CreateTournament(ctx context.Context, input tournamentservice.CreateTournamentInput) (results.OperationResult[*tournamentservice.TournamentInfo, error], error) {
	if f.CreateTournamentFunc != nil {
		return f.CreateTournamentFunc(ctx, input)
	}
	return results.OperationResult[*tournamentservice.TournamentInfo, error]{}, nil
}

func (f *FakeService) GetTournament(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[*tournamentservice.TournamentInfo, error], error) {
	if f.GetTournamentFunc != nil {
		return f.GetTournamentFunc(ctx, id)
	}
	return results.OperationResult[*tournamentservice.TournamentInfo, error]{}, nil
}

func (f *FakeService) GetTournamentLeaderboard(ctx context.Context, id sharedtypes.TournamentID, page, pageSize int) (results.OperationResult[*tournamentservice.LeaderboardPage, error], error) {
	if f.GetTournamentLeaderboardFunc != nil {
		return f.GetTournamentLeaderboardFunc(ctx, id, page, pageSize)
	}
	return results.OperationResult[*tournamentservice.LeaderboardPage, error]{}, nil
}

func (f *FakeService) GetTournamentResults(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[*tournamentservice.TournamentResults, error], error) {
	if f.GetTournamentResultsFunc != nil {
		return f.GetTournamentResultsFunc(ctx, id)
	}
	return results.OperationResult[*tournamentservice.TournamentResults, error]{}, nil
}

func (f *FakeService) ListTournaments(ctx context.Context) (results.OperationResult[[]sharedtypes.TournamentID, error], error) {
	if f.ListTournamentsFunc != nil {
		return f.ListTournamentsFunc(ctx)
	}
	return results.OperationResult[[]sharedtypes.TournamentID, error]{}, nil
}

func (f *FakeService) ListActiveTournaments(ctx context.Context, gameID sharedtypes.GameID) (results.OperationResult[[]tournamentservice.TournamentSummary, error], error) {
	if f.ListActiveTournamentsFunc != nil {
		return f.ListActiveTournamentsFunc(ctx, gameID)
	}
	return results.OperationResult[[]tournamentservice.TournamentSummary, error]{}, nil
}

func (f *FakeService) ExportResults(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[[]byte, error], error) {
	if f.ExportResultsFunc != nil {
		return f.ExportResultsFunc(ctx, id)
	}
	return results.OperationResult[[]byte, error]{}, nil
}

var _ tournamentservice.Service = (*FakeService)(nil)
