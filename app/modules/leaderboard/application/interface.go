package leaderboardservice

import (
	"context"

	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// Service is the global leaderboard read surface. Writes flow exclusively
// through score submission, which folds entries into board documents at the
// repository level.
type Service interface {
	GetGlobalLeaderboard(ctx context.Context, gameID sharedtypes.GameID, page, pageSize int) (results.OperationResult[*LeaderboardPage, error], error)
}
