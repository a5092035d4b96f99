// Package leaderboardevents defines the global leaderboard module's topics
// and payload schemas.
package leaderboardevents

import (
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// StreamName is the JetStream stream carrying all leaderboard subjects.
const StreamName = "leaderboard"

const (
	LeaderboardRetrievalRequestedV1 = "leaderboard.retrieval.requested.v1"
	LeaderboardRetrievedV1          = "leaderboard.retrieved.v1"
	LeaderboardRetrievalFailedV1    = "leaderboard.retrieval.failed.v1"
)

// LeaderboardRetrievalRequestedPayloadV1 asks for one page of a game's
// global leaderboard. Page is zero-based.
type LeaderboardRetrievalRequestedPayloadV1 struct {
	GameID   sharedtypes.GameID `json:"game_id"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// LeaderboardRetrievedPayloadV1 carries one leaderboard page. Total is the
// full board size so clients can page.
type LeaderboardRetrievedPayloadV1 struct {
	GameID   sharedtypes.GameID        `json:"game_id"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"page_size"`
	Total    int                       `json:"total"`
	Entries  []sharedtypes.RankedEntry `json:"entries"`
}

// LeaderboardRetrievalFailedPayloadV1 reports a failed leaderboard read.
type LeaderboardRetrievalFailedPayloadV1 struct {
	GameID sharedtypes.GameID `json:"game_id"`
	Code   string             `json:"code"`
	Reason string             `json:"reason"`
}
