package scoredb

import (
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/ranking"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/uptrace/bun"
)

// MaxHistoryRecords caps a player's stored history. The oldest record is
// evicted first once the cap is exceeded.
const MaxHistoryRecords = 100

// PlayerHistory is one player's submission history, stored as a single jsonb
// document per player. Records are ordered oldest first.
type PlayerHistory struct {
	bun.BaseModel `bun:"table:player_histories,alias:ph"`

	PlayerID  sharedtypes.PlayerID      `bun:"player_id,pk"`
	Records   []sharedtypes.ScoreRecord `bun:"records,type:jsonb,notnull"`
	CreatedAt time.Time                 `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time                 `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// AppendRecord pushes one record onto the history and evicts from the head
// at the cap. Returns how many records were evicted (0 or 1 in practice).
func (h *PlayerHistory) AppendRecord(record sharedtypes.ScoreRecord) (evicted int) {
	before := len(h.Records)
	h.Records = ranking.AppendBounded(h.Records, record, MaxHistoryRecords)
	if before+1 > len(h.Records) {
		return before + 1 - len(h.Records)
	}
	return 0
}
