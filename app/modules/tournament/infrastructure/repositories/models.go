package tournamentdb

import (
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// Tournament is the persisted tournament document. Entries are stored as an
// opaque jsonb document; the database never orders or filters them.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`

	ID         sharedtypes.TournamentID  `bun:"id,pk"`
	GameID     sharedtypes.GameID        `bun:"game_id,notnull"`
	StartTime  sharedtypes.Timestamp     `bun:"start_time,notnull"`
	EndTime    sharedtypes.Timestamp     `bun:"end_time,notnull"`
	MaxEntries int                       `bun:"max_entries,notnull"`
	Entries    []sharedtypes.RankedEntry `bun:"entries,type:jsonb,notnull"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Status derives the lifecycle state at now. The window is inclusive on both
// ends.
func (t *Tournament) Status(now time.Time) sharedtypes.TournamentStatus {
	ts := sharedtypes.TimestampFromTime(now)
	switch {
	case ts < t.StartTime:
		return sharedtypes.TournamentUpcoming
	case ts > t.EndTime:
		return sharedtypes.TournamentEnded
	default:
		return sharedtypes.TournamentActive
	}
}

// EntryIndex returns the position of a player's entry, or -1 when the player
// has not entered.
func (t *Tournament) EntryIndex(playerID sharedtypes.PlayerID) int {
	for i, entry := range t.Entries {
		if entry.PlayerID == playerID {
			return i
		}
	}
	return -1
}

// IsFull reports whether the tournament has reached its entry capacity.
// Capacity only gates new entrants; players with an existing entry may still
// improve their score.
func (t *Tournament) IsFull() bool {
	return t.MaxEntries > 0 && len(t.Entries) >= t.MaxEntries
}

// indexRowID is the primary key of the single tournament_index row.
const indexRowID = 1

// TournamentIndex is the append-only registry of every tournament ever
// created, stored as one jsonb array in a single row.
type TournamentIndex struct {
	bun.BaseModel `bun:"table:tournament_index,alias:ti"`

	ID            int64                      `bun:"id,pk"`
	TournamentIDs []sharedtypes.TournamentID `bun:"tournament_ids,type:jsonb,notnull"`

	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
