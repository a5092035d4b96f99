package leaderboardservice

import (
	"context"
	"errors"
	"fmt"

	leaderboarddb "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/repositories"
	"github.com/Arcadelis/arcadis-scoring/internal/ranking"
	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// GetGlobalLeaderboard returns one page of a game's all-time board. A game
// with no submissions yet reads as an empty board, not a failure.
func (s *LeaderboardService) GetGlobalLeaderboard(ctx context.Context, gameID sharedtypes.GameID, page, pageSize int) (results.OperationResult[*LeaderboardPage, error], error) {
	return withTelemetry(s, ctx, "GetGlobalLeaderboard", string(gameID), func(ctx context.Context) (results.OperationResult[*LeaderboardPage, error], error) {
		if gameID == "" {
			return results.FailureResult[*LeaderboardPage, error](
				fmt.Errorf("%w: game_id is required", sharedtypes.ErrInvalidParameters)), nil
		}

		entries := []sharedtypes.RankedEntry{}
		board, err := s.repo.GetLeaderboard(ctx, nil, gameID)
		switch {
		case err == nil:
			entries = board.Entries
		case errors.Is(err, leaderboarddb.ErrNotFound):
			// empty board
		default:
			return results.OperationResult[*LeaderboardPage, error]{}, fmt.Errorf("failed to load leaderboard: %w", err)
		}

		return results.SuccessResult[*LeaderboardPage, error](&LeaderboardPage{
			GameID:   gameID,
			Page:     page,
			PageSize: pageSize,
			Total:    len(entries),
			Entries:  ranking.Paginate(entries, page, pageSize),
		}), nil
	})
}
