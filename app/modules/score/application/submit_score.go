package scoreservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	leaderboarddb "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/repositories"
	scoredb "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/repositories"
	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	"github.com/Arcadelis/arcadis-scoring/internal/ranking"
	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"github.com/uptrace/bun"
)

// SubmitScore is the single write path for scores. The tournament entry
// update, the global board update, and the history append commit together or
// not at all; identity and input checks run before the transaction opens so
// rejected submissions never touch the database.
func (s *ScoreService) SubmitScore(ctx context.Context, input SubmitScoreInput) (results.OperationResult[*SubmissionResult, error], error) {
	return withTelemetry(s, ctx, "SubmitScore", string(input.TournamentID), func(ctx context.Context) (results.OperationResult[*SubmissionResult, error], error) {
		if err := s.verifySubmitter(ctx, input.PlayerID); err != nil {
			return s.reject(ctx, err), nil
		}
		if err := validateSubmitInput(input); err != nil {
			return s.reject(ctx, err), nil
		}

		result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*SubmissionResult, error], error) {
			return s.submitScoreLogic(ctx, db, input)
		})
		if err != nil {
			return results.OperationResult[*SubmissionResult, error]{}, err
		}
		if result.IsFailure() {
			return s.reject(ctx, *result.Failure), nil
		}

		if s.metrics != nil {
			s.metrics.RecordSubmissionOutcome(ctx, "submitted")
		}
		return result, nil
	})
}

// submitScoreLogic applies one submission inside the given transaction.
func (s *ScoreService) submitScoreLogic(ctx context.Context, db bun.IDB, input SubmitScoreInput) (results.OperationResult[*SubmissionResult, error], error) {
	now := s.clock.Now()

	tournament, err := s.tournaments.GetTournament(ctx, db, input.TournamentID)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			return results.FailureResult[*SubmissionResult, error](
				fmt.Errorf("%w: %s", sharedtypes.ErrTournamentNotFound, input.TournamentID)), nil
		}
		return results.OperationResult[*SubmissionResult, error]{}, fmt.Errorf("failed to load tournament: %w", err)
	}

	if tournament.Status(now) != sharedtypes.TournamentActive {
		return results.FailureResult[*SubmissionResult, error](
			fmt.Errorf("%w: %s", sharedtypes.ErrTournamentNotActive, input.TournamentID)), nil
	}

	if tournament.EntryIndex(input.PlayerID) < 0 && tournament.IsFull() {
		if s.metrics != nil {
			s.metrics.RecordCapacityRejection(ctx, input.TournamentID)
		}
		return results.FailureResult[*SubmissionResult, error](
			fmt.Errorf("%w: %s", sharedtypes.ErrTournamentFull, input.TournamentID)), nil
	}

	entries, changed := ranking.UpsertScore(tournament.Entries, input.PlayerID, input.Score)

	rerankStart := time.Now()
	ranking.Rerank(entries)
	if s.metrics != nil {
		s.metrics.RecordRerankDuration(ctx, time.Since(rerankStart))
	}

	if changed {
		if err := s.tournaments.UpdateEntries(ctx, db, input.TournamentID, entries); err != nil {
			return results.OperationResult[*SubmissionResult, error]{}, fmt.Errorf("failed to update tournament entries: %w", err)
		}
		if err := s.updateGlobalBoard(ctx, db, tournament.GameID, input.PlayerID, input.Score); err != nil {
			return results.OperationResult[*SubmissionResult, error]{}, err
		}
	}

	if err := s.appendHistory(ctx, db, input, tournament.GameID, sharedtypes.TimestampFromTime(now)); err != nil {
		return results.OperationResult[*SubmissionResult, error]{}, err
	}

	rank, ok := ranking.RankOf(entries, input.PlayerID)
	if !ok {
		return results.OperationResult[*SubmissionResult, error]{}, fmt.Errorf("player %s missing after rerank", input.PlayerID)
	}

	return results.SuccessResult[*SubmissionResult, error](&SubmissionResult{
		TournamentID: input.TournamentID,
		GameID:       tournament.GameID,
		PlayerID:     input.PlayerID,
		Score:        input.Score,
		Rank:         rank,
	}), nil
}

// updateGlobalBoard folds the submission into the game's all-time board.
func (s *ScoreService) updateGlobalBoard(ctx context.Context, db bun.IDB, gameID sharedtypes.GameID, playerID sharedtypes.PlayerID, score sharedtypes.Score) error {
	board, err := s.boards.GetLeaderboard(ctx, db, gameID)
	switch {
	case err == nil:
	case errors.Is(err, leaderboarddb.ErrNotFound):
		board = &leaderboarddb.GlobalLeaderboard{GameID: gameID}
	default:
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	changed, trimmed := board.ApplyScore(playerID, score)
	if !changed {
		return nil
	}
	if trimmed > 0 && s.metrics != nil {
		s.metrics.RecordBoardTrim(ctx, trimmed)
	}

	if err := s.boards.UpsertLeaderboard(ctx, db, board); err != nil {
		return fmt.Errorf("failed to upsert leaderboard: %w", err)
	}
	return nil
}

// appendHistory records the submission in the player's bounded history.
// Every accepted submission is recorded, including equal-score no-op writes.
func (s *ScoreService) appendHistory(ctx context.Context, db bun.IDB, input SubmitScoreInput, gameID sharedtypes.GameID, at sharedtypes.Timestamp) error {
	history, err := s.histories.GetHistory(ctx, db, input.PlayerID)
	switch {
	case err == nil:
	case errors.Is(err, scoredb.ErrNotFound):
		history = &scoredb.PlayerHistory{PlayerID: input.PlayerID}
	default:
		return fmt.Errorf("failed to load player history: %w", err)
	}

	evicted := history.AppendRecord(sharedtypes.ScoreRecord{
		Score:        input.Score,
		Timestamp:    at,
		GameID:       gameID,
		TournamentID: input.TournamentID,
	})
	if evicted > 0 && s.metrics != nil {
		for i := 0; i < evicted; i++ {
			s.metrics.RecordHistoryEviction(ctx)
		}
	}

	if err := s.histories.UpsertHistory(ctx, db, history); err != nil {
		return fmt.Errorf("failed to upsert player history: %w", err)
	}
	return nil
}

// verifySubmitter checks that the bearer token carried in the request
// context belongs to the player the submission names.
func (s *ScoreService) verifySubmitter(ctx context.Context, playerID sharedtypes.PlayerID) error {
	if s.verifier == nil {
		return fmt.Errorf("%w: no submitter verifier configured", sharedtypes.ErrUnauthorized)
	}
	token := utils.AuthTokenFromContext(ctx)
	if err := s.verifier.VerifySubmitter(ctx, token, playerID); err != nil {
		if errors.Is(err, sharedtypes.ErrUnauthorized) {
			return err
		}
		return fmt.Errorf("%w: %v", sharedtypes.ErrUnauthorized, err)
	}
	return nil
}

// reject records the failure outcome and wraps it as a failure result.
func (s *ScoreService) reject(ctx context.Context, err error) results.OperationResult[*SubmissionResult, error] {
	if s.metrics != nil {
		s.metrics.RecordSubmissionOutcome(ctx, sharedtypes.ErrorCode(err))
	}
	return results.FailureResult[*SubmissionResult, error](err)
}

// validateSubmitInput enforces the submission parameter invariants.
func validateSubmitInput(input SubmitScoreInput) error {
	if input.TournamentID == "" {
		return fmt.Errorf("%w: tournament_id is required", sharedtypes.ErrInvalidParameters)
	}
	if input.PlayerID == "" {
		return fmt.Errorf("%w: player_id is required", sharedtypes.ErrInvalidParameters)
	}
	if input.Score < 0 {
		return fmt.Errorf("%w: score must not be negative", sharedtypes.ErrInvalidParameters)
	}
	return nil
}
