package tournamentservice

import (
	"context"

	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// Service defines the contract for tournament operations. Score submission
// is deliberately absent: submissions mutate tournament, global leaderboard,
// and player history together and are orchestrated by the score module.
type Service interface {
	// CreateTournament registers a new tournament with an empty entry list
	// and records it in the tournament index.
	CreateTournament(ctx context.Context, input CreateTournamentInput) (results.OperationResult[*TournamentInfo, error], error)

	// GetTournament returns the full tournament document.
	GetTournament(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[*TournamentInfo, error], error)

	// GetTournamentLeaderboard returns one page of current standings.
	GetTournamentLeaderboard(ctx context.Context, id sharedtypes.TournamentID, page, pageSize int) (results.OperationResult[*LeaderboardPage, error], error)

	// GetTournamentResults returns final standings. Fails until the
	// tournament has ended.
	GetTournamentResults(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[*TournamentResults, error], error)

	// ListTournaments returns every tournament ID in creation order.
	ListTournaments(ctx context.Context) (results.OperationResult[[]sharedtypes.TournamentID, error], error)

	// ListActiveTournaments returns tournaments currently inside their
	// window, optionally filtered by game.
	ListActiveTournaments(ctx context.Context, gameID sharedtypes.GameID) (results.OperationResult[[]TournamentSummary, error], error)

	// ExportResults renders an ended tournament's standings as an xlsx
	// workbook.
	ExportResults(ctx context.Context, id sharedtypes.TournamentID) (results.OperationResult[[]byte, error], error)
}
