// Package tournamentevents defines the tournament module's topics and
// payload schemas. Topics are versioned; payload shapes never change within
// a version.
package tournamentevents

import (
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// StreamName is the JetStream stream carrying all tournament subjects.
const StreamName = "tournament"

const (
	TournamentCreateRequestedV1 = "tournament.create.requested.v1"
	TournamentCreatedV1         = "tournament.created.v1"
	TournamentCreationFailedV1  = "tournament.creation.failed.v1"

	TournamentRetrievalRequestedV1 = "tournament.retrieval.requested.v1"
	TournamentRetrievedV1          = "tournament.retrieved.v1"
	TournamentRetrievalFailedV1    = "tournament.retrieval.failed.v1"

	TournamentResultsRequestedV1 = "tournament.results.requested.v1"
	TournamentResultsRetrievedV1 = "tournament.results.retrieved.v1"
	TournamentResultsFailedV1    = "tournament.results.failed.v1"

	TournamentLeaderboardRequestedV1 = "tournament.leaderboard.requested.v1"
	TournamentLeaderboardRetrievedV1 = "tournament.leaderboard.retrieved.v1"
	TournamentLeaderboardFailedV1    = "tournament.leaderboard.failed.v1"

	TournamentListRequestedV1 = "tournament.list.requested.v1"
	TournamentListRetrievedV1 = "tournament.list.retrieved.v1"
	TournamentListFailedV1    = "tournament.list.failed.v1"

	TournamentListActiveRequestedV1 = "tournament.list.active.requested.v1"
	TournamentListActiveRetrievedV1 = "tournament.list.active.retrieved.v1"
	TournamentListActiveFailedV1    = "tournament.list.active.failed.v1"

	// Lifecycle notifications published by the scheduled queue workers.
	TournamentStartedV1 = "tournament.started.v1"
	TournamentEndedV1   = "tournament.ended.v1"
)

// TournamentCreateRequestedPayloadV1 asks for a new tournament. Times are
// unix seconds, already resolved by the caller.
type TournamentCreateRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	GameID       sharedtypes.GameID       `json:"game_id"`
	StartTime    sharedtypes.Timestamp    `json:"start_time"`
	EndTime      sharedtypes.Timestamp    `json:"end_time"`
	MaxEntries   int                      `json:"max_entries"`
}

// TournamentCreatedPayloadV1 announces a created tournament.
type TournamentCreatedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	GameID       sharedtypes.GameID       `json:"game_id"`
}

// TournamentCreationFailedPayloadV1 reports a rejected creation.
type TournamentCreationFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	GameID       sharedtypes.GameID       `json:"game_id"`
	Code         string                   `json:"code"`
	Reason       string                   `json:"reason"`
}

// TournamentRetrievalRequestedPayloadV1 asks for one tournament document.
type TournamentRetrievalRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
}

// TournamentViewV1 is the full tournament document as exposed on the wire.
type TournamentViewV1 struct {
	TournamentID sharedtypes.TournamentID     `json:"tournament_id"`
	GameID       sharedtypes.GameID           `json:"game_id"`
	StartTime    sharedtypes.Timestamp        `json:"start_time"`
	EndTime      sharedtypes.Timestamp        `json:"end_time"`
	MaxEntries   int                          `json:"max_entries"`
	Status       sharedtypes.TournamentStatus `json:"status"`
	Entries      []sharedtypes.RankedEntry    `json:"entries"`
}

// TournamentRetrievedPayloadV1 carries a tournament document.
type TournamentRetrievedPayloadV1 struct {
	Tournament TournamentViewV1 `json:"tournament"`
}

// TournamentRetrievalFailedPayloadV1 reports a failed retrieval.
type TournamentRetrievalFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Code         string                   `json:"code"`
	Reason       string                   `json:"reason"`
}

// TournamentResultsRequestedPayloadV1 asks for final standings.
type TournamentResultsRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
}

// TournamentResultsRetrievedPayloadV1 carries final standings of an ended
// tournament.
type TournamentResultsRetrievedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID  `json:"tournament_id"`
	GameID       sharedtypes.GameID        `json:"game_id"`
	Results      []sharedtypes.RankedEntry `json:"results"`
}

// TournamentResultsFailedPayloadV1 reports why results are unavailable.
type TournamentResultsFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Code         string                   `json:"code"`
	Reason       string                   `json:"reason"`
}

// TournamentLeaderboardRequestedPayloadV1 asks for one page of a
// tournament's current standings.
type TournamentLeaderboardRequestedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Page         int                      `json:"page"`
	PageSize     int                      `json:"page_size"`
}

// TournamentLeaderboardRetrievedPayloadV1 carries one standings page.
type TournamentLeaderboardRetrievedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID  `json:"tournament_id"`
	Page         int                       `json:"page"`
	PageSize     int                       `json:"page_size"`
	Total        int                       `json:"total"`
	Entries      []sharedtypes.RankedEntry `json:"entries"`
}

// TournamentLeaderboardFailedPayloadV1 reports a failed standings read.
type TournamentLeaderboardFailedPayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Code         string                   `json:"code"`
	Reason       string                   `json:"reason"`
}

// TournamentListRequestedPayloadV1 asks for every tournament ID ever
// registered.
type TournamentListRequestedPayloadV1 struct{}

// TournamentListRetrievedPayloadV1 carries the full registry in creation
// order.
type TournamentListRetrievedPayloadV1 struct {
	TournamentIDs []sharedtypes.TournamentID `json:"tournament_ids"`
}

// TournamentListFailedPayloadV1 reports a failed registry read.
type TournamentListFailedPayloadV1 struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// TournamentListActiveRequestedPayloadV1 asks for currently active
// tournaments. An empty GameID means no filter.
type TournamentListActiveRequestedPayloadV1 struct {
	GameID sharedtypes.GameID `json:"game_id,omitempty"`
}

// TournamentSummaryV1 is the list-view projection of a tournament.
type TournamentSummaryV1 struct {
	TournamentID sharedtypes.TournamentID     `json:"tournament_id"`
	GameID       sharedtypes.GameID           `json:"game_id"`
	StartTime    sharedtypes.Timestamp        `json:"start_time"`
	EndTime      sharedtypes.Timestamp        `json:"end_time"`
	MaxEntries   int                          `json:"max_entries"`
	EntryCount   int                          `json:"entry_count"`
	Status       sharedtypes.TournamentStatus `json:"status"`
}

// TournamentListActiveRetrievedPayloadV1 carries the active tournament list
// in creation order.
type TournamentListActiveRetrievedPayloadV1 struct {
	GameID      sharedtypes.GameID    `json:"game_id,omitempty"`
	Tournaments []TournamentSummaryV1 `json:"tournaments"`
}

// TournamentListActiveFailedPayloadV1 reports a failed listing.
type TournamentListActiveFailedPayloadV1 struct {
	GameID sharedtypes.GameID `json:"game_id,omitempty"`
	Code   string             `json:"code"`
	Reason string             `json:"reason"`
}

// TournamentLifecyclePayloadV1 announces a tournament crossing its start or
// end time. Published on TournamentStartedV1 and TournamentEndedV1.
type TournamentLifecyclePayloadV1 struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	GameID       sharedtypes.GameID       `json:"game_id"`
}
