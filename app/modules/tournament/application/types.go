package tournamentservice

import (
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// Tournament capacity bounds. Creation rejects a max_entries outside this
// range.
const (
	MinTournamentCapacity = 1
	MaxTournamentCapacity = 10000
)

// CreateTournamentInput carries the parameters for a new tournament.
type CreateTournamentInput struct {
	TournamentID sharedtypes.TournamentID
	GameID       sharedtypes.GameID
	StartTime    sharedtypes.Timestamp
	EndTime      sharedtypes.Timestamp
	MaxEntries   int
}

// TournamentInfo is the service-level view of one tournament.
type TournamentInfo struct {
	TournamentID sharedtypes.TournamentID
	GameID       sharedtypes.GameID
	StartTime    sharedtypes.Timestamp
	EndTime      sharedtypes.Timestamp
	MaxEntries   int
	Status       sharedtypes.TournamentStatus
	Entries      []sharedtypes.RankedEntry
}

// TournamentSummary is the list-view projection of one tournament.
type TournamentSummary struct {
	TournamentID sharedtypes.TournamentID
	GameID       sharedtypes.GameID
	StartTime    sharedtypes.Timestamp
	EndTime      sharedtypes.Timestamp
	MaxEntries   int
	EntryCount   int
	Status       sharedtypes.TournamentStatus
}

// LeaderboardPage is one page of tournament standings.
type LeaderboardPage struct {
	TournamentID sharedtypes.TournamentID
	Page         int
	PageSize     int
	Total        int
	Entries      []sharedtypes.RankedEntry
}

// TournamentResults is the final standings view of an ended tournament.
type TournamentResults struct {
	TournamentID sharedtypes.TournamentID
	GameID       sharedtypes.GameID
	Results      []sharedtypes.RankedEntry
}
