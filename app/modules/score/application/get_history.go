package scoreservice

import (
	"context"
	"errors"
	"fmt"

	scoredb "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/repositories"
	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// GetPlayerHistory returns a player's submission records, oldest first. A
// player with no stored history reads as an empty record list, not an error.
func (s *ScoreService) GetPlayerHistory(ctx context.Context, playerID sharedtypes.PlayerID) (results.OperationResult[*PlayerHistoryView, error], error) {
	return withTelemetry(s, ctx, "GetPlayerHistory", string(playerID), func(ctx context.Context) (results.OperationResult[*PlayerHistoryView, error], error) {
		if playerID == "" {
			return results.FailureResult[*PlayerHistoryView, error](
				fmt.Errorf("%w: player_id is required", sharedtypes.ErrInvalidParameters)), nil
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*PlayerHistoryView, error], error) {
			history, err := s.histories.GetHistory(ctx, db, playerID)
			if err != nil {
				if errors.Is(err, scoredb.ErrNotFound) {
					return results.SuccessResult[*PlayerHistoryView, error](&PlayerHistoryView{
						PlayerID: playerID,
						Records:  []sharedtypes.ScoreRecord{},
					}), nil
				}
				return results.OperationResult[*PlayerHistoryView, error]{}, fmt.Errorf("failed to load player history: %w", err)
			}

			return results.SuccessResult[*PlayerHistoryView, error](&PlayerHistoryView{
				PlayerID: playerID,
				Records:  history.Records,
			}), nil
		})
	})
}
