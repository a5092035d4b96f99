package scoreservice

import (
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// SubmitScoreInput carries one score submission.
type SubmitScoreInput struct {
	TournamentID sharedtypes.TournamentID
	PlayerID     sharedtypes.PlayerID
	Score        sharedtypes.Score
}

// SubmissionResult is the committed outcome of a submission. Rank is the
// player's tournament rank after reranking.
type SubmissionResult struct {
	TournamentID sharedtypes.TournamentID
	GameID       sharedtypes.GameID
	PlayerID     sharedtypes.PlayerID
	Score        sharedtypes.Score
	Rank         int
}

// PlayerHistoryView is a player's stored submission records, oldest first.
type PlayerHistoryView struct {
	PlayerID sharedtypes.PlayerID
	Records  []sharedtypes.ScoreRecord
}
