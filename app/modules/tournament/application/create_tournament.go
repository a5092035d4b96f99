package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	"github.com/Arcadelis/arcadis-scoring/internal/attr"
	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// CreateTournament registers a new tournament and appends it to the index.
// Both writes happen in one transaction so the index never references a
// tournament that failed to persist.
func (s *TournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (results.OperationResult[*TournamentInfo, error], error) {
	createTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*TournamentInfo, error], error) {
		return s.createTournamentLogic(ctx, db, input)
	}

	return withTelemetry(s, ctx, "CreateTournament", string(input.TournamentID), func(ctx context.Context) (results.OperationResult[*TournamentInfo, error], error) {
		result, err := runInTx(s, ctx, createTx)
		if err == nil && result.IsSuccess() {
			s.scheduleLifecycleJobs(ctx, input)
		}
		return result, err
	})
}

// scheduleLifecycleJobs enqueues the started/ended notifications once the
// tournament is committed. Scheduling failures are logged but never fail the
// creation; the tournament itself is already durable.
func (s *TournamentService) scheduleLifecycleJobs(ctx context.Context, input CreateTournamentInput) {
	if s.queue == nil {
		return
	}

	if err := s.queue.ScheduleTournamentStart(ctx, input.TournamentID, input.GameID, input.StartTime.AsTime()); err != nil {
		s.logger.WarnContext(ctx, "Failed to schedule tournament start notification",
			attr.TournamentID(input.TournamentID),
			attr.Error(err),
		)
	}
	if err := s.queue.ScheduleTournamentEnd(ctx, input.TournamentID, input.GameID, input.EndTime.AsTime()); err != nil {
		s.logger.WarnContext(ctx, "Failed to schedule tournament end notification",
			attr.TournamentID(input.TournamentID),
			attr.Error(err),
		)
	}
}

// createTournamentLogic contains the core logic.
func (s *TournamentService) createTournamentLogic(ctx context.Context, db bun.IDB, input CreateTournamentInput) (results.OperationResult[*TournamentInfo, error], error) {
	if err := validateCreateInput(input); err != nil {
		return results.FailureResult[*TournamentInfo, error](err), nil
	}

	tournament := &tournamentdb.Tournament{
		ID:         input.TournamentID,
		GameID:     input.GameID,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		MaxEntries: input.MaxEntries,
		Entries:    []sharedtypes.RankedEntry{},
	}

	if err := s.repo.CreateTournament(ctx, db, tournament); err != nil {
		if errors.Is(err, tournamentdb.ErrAlreadyExists) {
			return results.FailureResult[*TournamentInfo, error](
				fmt.Errorf("%w: %s", sharedtypes.ErrTournamentExists, input.TournamentID)), nil
		}
		return results.OperationResult[*TournamentInfo, error]{}, fmt.Errorf("failed to create tournament: %w", err)
	}

	if err := s.repo.AppendToIndex(ctx, db, input.TournamentID); err != nil {
		return results.OperationResult[*TournamentInfo, error]{}, fmt.Errorf("failed to index tournament: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordTournamentCreated(ctx, input.GameID)
	}

	return results.SuccessResult[*TournamentInfo, error](s.tournamentInfoView(tournament)), nil
}

// validateCreateInput enforces the creation parameter invariants.
func validateCreateInput(input CreateTournamentInput) error {
	if input.TournamentID == "" {
		return fmt.Errorf("%w: tournament_id is required", sharedtypes.ErrInvalidParameters)
	}
	if input.GameID == "" {
		return fmt.Errorf("%w: game_id is required", sharedtypes.ErrInvalidParameters)
	}
	if input.StartTime >= input.EndTime {
		return fmt.Errorf("%w: start_time must precede end_time", sharedtypes.ErrInvalidParameters)
	}
	if input.MaxEntries < MinTournamentCapacity || input.MaxEntries > MaxTournamentCapacity {
		return fmt.Errorf("%w: max_entries must be between %d and %d",
			sharedtypes.ErrInvalidParameters, MinTournamentCapacity, MaxTournamentCapacity)
	}
	return nil
}
