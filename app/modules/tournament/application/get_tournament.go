package tournamentservice

import (
	"context"
	"errors"
	"fmt"

	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	"github.com/Arcadelis/arcadis-scoring/internal/ranking"
	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// GetTournament returns the full tournament document with its derived
// status.
func (s *TournamentService) GetTournament(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[*TournamentInfo, error], error) {
	return withTelemetry(s, ctx, "GetTournament", string(id), func(ctx context.Context) (results.OperationResult[*TournamentInfo, error], error) {
		tournament, err := s.loadTournament(ctx, id)
		if err != nil {
			return results.OperationResult[*TournamentInfo, error]{}, err
		}
		if tournament == nil {
			return results.FailureResult[*TournamentInfo, error](
				fmt.Errorf("%w: %s", sharedtypes.ErrTournamentNotFound, id)), nil
		}
		return results.SuccessResult[*TournamentInfo, error](s.tournamentInfoView(tournament)), nil
	})
}

// GetTournamentLeaderboard returns one page of the tournament's current
// standings. Standings are readable in any lifecycle state.
func (s *TournamentService) GetTournamentLeaderboard(ctx context.Context, id sharedtypes.TournamentID, page, pageSize int) (results.OperationResult[*LeaderboardPage, error], error) {
	return withTelemetry(s, ctx, "GetTournamentLeaderboard", string(id), func(ctx context.Context) (results.OperationResult[*LeaderboardPage, error], error) {
		tournament, err := s.loadTournament(ctx, id)
		if err != nil {
			return results.OperationResult[*LeaderboardPage, error]{}, err
		}
		if tournament == nil {
			return results.FailureResult[*LeaderboardPage, error](
				fmt.Errorf("%w: %s", sharedtypes.ErrTournamentNotFound, id)), nil
		}

		return results.SuccessResult[*LeaderboardPage, error](&LeaderboardPage{
			TournamentID: id,
			Page:         page,
			PageSize:     pageSize,
			Total:        len(tournament.Entries),
			Entries:      ranking.Paginate(tournament.Entries, page, pageSize),
		}), nil
	})
}

// GetTournamentResults returns final standings. Standings only become final
// once the tournament window has closed, so an upcoming or active
// tournament fails the read.
func (s *TournamentService) GetTournamentResults(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[*TournamentResults, error], error) {
	return withTelemetry(s, ctx, "GetTournamentResults", string(id), func(ctx context.Context) (results.OperationResult[*TournamentResults, error], error) {
		tournament, err := s.loadTournament(ctx, id)
		if err != nil {
			return results.OperationResult[*TournamentResults, error]{}, err
		}
		if tournament == nil {
			return results.FailureResult[*TournamentResults, error](
				fmt.Errorf("%w: %s", sharedtypes.ErrTournamentNotFound, id)), nil
		}

		if tournament.Status(s.clock.Now()) != sharedtypes.TournamentEnded {
			return results.FailureResult[*TournamentResults, error](
				fmt.Errorf("%w: results for %s are not final until the tournament ends", sharedtypes.ErrTournamentNotActive, id)), nil
		}

		return results.SuccessResult[*TournamentResults, error](&TournamentResults{
			TournamentID: tournament.ID,
			GameID:       tournament.GameID,
			Results:      tournament.Entries,
		}), nil
	})
}

// loadTournament fetches a tournament, translating "absent" into a nil
// document so callers decide the failure shape.
func (s *TournamentService) loadTournament(ctx context.Context, id sharedtypes.TournamentID) (*tournamentdb.Tournament, error) {
	tournament, err := s.repo.GetTournament(ctx, nil, id)
	if err != nil {
		if errors.Is(err, tournamentdb.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load tournament: %w", err)
	}
	return tournament, nil
}
