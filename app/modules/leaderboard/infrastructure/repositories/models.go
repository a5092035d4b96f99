package leaderboarddb

import (
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/ranking"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// MaxBoardEntries caps a game's global board. Rerank keeps the strongest
// entries; the tail past this cap is dropped on every write.
const MaxBoardEntries = 1000

// GlobalLeaderboard is one game's all-time board, stored as a single sorted
// document per game.
type GlobalLeaderboard struct {
	bun.BaseModel `bun:"table:global_leaderboards,alias:gl"`

	GameID    sharedtypes.GameID        `bun:"game_id,pk"`
	Entries   []sharedtypes.RankedEntry `bun:"entries,type:jsonb,notnull"`
	CreatedAt time.Time                 `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time                 `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ApplyScore folds one submission into the board: improve-only per player,
// reordered, and trimmed at the cap. Returns whether the document changed and
// how many tail entries the cap dropped. A submission that lands below the
// cap on a full board still counts as applied.
func (l *GlobalLeaderboard) ApplyScore(playerID sharedtypes.PlayerID, score sharedtypes.Score) (changed bool, trimmed int) {
	entries, changed := ranking.UpsertScore(l.Entries, playerID, score)
	if !changed {
		return false, 0
	}
	ranking.Rerank(entries)
	before := len(entries)
	entries = ranking.TrimTail(entries, MaxBoardEntries)
	l.Entries = entries
	return true, before - len(entries)
}
