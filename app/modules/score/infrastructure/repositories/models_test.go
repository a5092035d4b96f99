package scoredb

import (
	"testing"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

func TestPlayerHistory_AppendRecord(t *testing.T) {
	t.Run("appends below the cap", func(t *testing.T) {
		h := &PlayerHistory{PlayerID: "A"}

		for i := 0; i < MaxHistoryRecords; i++ {
			evicted := h.AppendRecord(sharedtypes.ScoreRecord{
				Score:     sharedtypes.Score(i),
				Timestamp: sharedtypes.Timestamp(i),
			})
			if evicted != 0 {
				t.Fatalf("no eviction expected at record %d, got %d", i, evicted)
			}
		}

		if len(h.Records) != MaxHistoryRecords {
			t.Fatalf("expected %d records, got %d", MaxHistoryRecords, len(h.Records))
		}
		if h.Records[0].Timestamp != 0 {
			t.Errorf("oldest record must stay at the head, got %+v", h.Records[0])
		}
	})

	t.Run("evicts the oldest at the cap", func(t *testing.T) {
		h := &PlayerHistory{PlayerID: "A"}
		for i := 0; i < MaxHistoryRecords; i++ {
			h.AppendRecord(sharedtypes.ScoreRecord{Timestamp: sharedtypes.Timestamp(i)})
		}

		evicted := h.AppendRecord(sharedtypes.ScoreRecord{Timestamp: 999})
		if evicted != 1 {
			t.Fatalf("expected 1 eviction, got %d", evicted)
		}
		if len(h.Records) != MaxHistoryRecords {
			t.Fatalf("cap must hold at %d, got %d", MaxHistoryRecords, len(h.Records))
		}
		if h.Records[0].Timestamp != 1 {
			t.Errorf("record 0 must be evicted, head is %+v", h.Records[0])
		}
		if h.Records[len(h.Records)-1].Timestamp != 999 {
			t.Errorf("new record must land at the tail, got %+v", h.Records[len(h.Records)-1])
		}
	})
}
