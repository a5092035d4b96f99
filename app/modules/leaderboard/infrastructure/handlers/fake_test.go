package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/application"
	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// FakeService stubs the leaderboard application service.
type FakeService struct {
	GetGlobalLeaderboardFunc func(ctx context.Context, gameID sharedtypes.GameID, page, pageSize int) (results.OperationResult[*leaderboardservice.LeaderboardPage, error], error)
}

func NewFakeService() *FakeService {
	return &FakeService{}
}

func (f *FakeService) GetGlobalLeaderboard(ctx context.Context, gameID sharedtypes.GameID, page, pageSize int) (results.OperationResult[*leaderboardservice.LeaderboardPage, error], error) {
	if f.GetGlobalLeaderboardFunc != nil {
		return f.GetGlobalLeaderboardFunc(ctx, gameID, page, pageSize)
	}
	return results.SuccessResult[*leaderboardservice.LeaderboardPage, error](&leaderboardservice.LeaderboardPage{
		GameID:  gameID,
		Entries: []sharedtypes.RankedEntry{},
	}), nil
}

var _ leaderboardservice.Service = (*FakeService)(nil)
