// Package scoreevents defines the score module's topics and payload schemas.
package scoreevents

import (
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// StreamName is the JetStream stream carrying all score subjects.
const StreamName = "score"

const (
	ScoreSubmissionRequestedV1 = "score.submission.requested.v1"
	ScoreSubmittedV1           = "score.submitted.v1"
	ScoreSubmissionFailedV1    = "score.submission.failed.v1"

	ScoreHistoryRequestedV1 = "score.history.requested.v1"
	ScoreHistoryRetrievedV1 = "score.history.retrieved.v1"
	ScoreHistoryFailedV1    = "score.history.failed.v1"
)

// ScoreSubmissionRequestedPayloadV1 submits a score to a tournament. The
// submitter's bearer token travels in message metadata, never in the payload.
type ScoreSubmissionRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	PlayerID     sharedtypes.PlayerID     `json:"player_id"`
	Score        sharedtypes.Score        `json:"score"`
}

// ScoreSubmittedPayloadV1 announces a committed submission. Rank is the
// player's tournament rank after reranking.
type ScoreSubmittedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	GameID       sharedtypes.GameID       `json:"game_id"`
	PlayerID     sharedtypes.PlayerID     `json:"player_id"`
	Score        sharedtypes.Score        `json:"score"`
	Rank         int                      `json:"rank"`
}

// ScoreSubmissionFailedPayloadV1 reports a rejected submission.
type ScoreSubmissionFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	PlayerID     sharedtypes.PlayerID     `json:"player_id"`
	Score        sharedtypes.Score        `json:"score"`
	Code         string                   `json:"code"`
	Reason       string                   `json:"reason"`
}

// ScoreHistoryRequestedPayloadV1 asks for a player's submission history.
type ScoreHistoryRequestedPayloadV1 struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
}

// ScoreHistoryRetrievedPayloadV1 carries a player's history, oldest first.
type ScoreHistoryRetrievedPayloadV1 struct {
	PlayerID sharedtypes.PlayerID      `json:"player_id"`
	Records  []sharedtypes.ScoreRecord `json:"records"`
}

// ScoreHistoryFailedPayloadV1 reports a failed history read.
type ScoreHistoryFailedPayloadV1 struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Code     string               `json:"code"`
	Reason   string               `json:"reason"`
}
