package scoreservice

import (
	"context"

	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// Service is the score module's contract: the single write path for scores
// plus the player history read.
type Service interface {
	// SubmitScore verifies the submitter, folds the score into the
	// tournament, the game's global leaderboard, and the player's history,
	// all inside one transaction, and returns the player's post-rerank
	// tournament rank.
	SubmitScore(ctx context.Context, input SubmitScoreInput) (results.OperationResult[*SubmissionResult, error], error)

	// GetPlayerHistory returns a player's submission records, oldest first.
	// An unknown player reads as an empty history.
	GetPlayerHistory(ctx context.Context, playerID sharedtypes.PlayerID) (results.OperationResult[*PlayerHistoryView, error], error)
}

// SubmitterVerifier checks that the acting identity is the player a
// submission claims to be. The auth module provides the implementation; a
// nil verifier on the service rejects every submission.
type SubmitterVerifier interface {
	VerifySubmitter(ctx context.Context, token string, playerID sharedtypes.PlayerID) error
}
