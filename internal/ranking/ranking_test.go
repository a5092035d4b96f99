package ranking

import (
	"testing"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/google/go-cmp/cmp"
)

func entry(player string, score int64, rank int) sharedtypes.RankedEntry {
	return sharedtypes.RankedEntry{
		PlayerID: sharedtypes.PlayerID(player),
		Score:    sharedtypes.Score(score),
		Rank:     rank,
	}
}

func TestRerank(t *testing.T) {
	tests := []struct {
		name    string
		entries []sharedtypes.RankedEntry
		want    []sharedtypes.RankedEntry
	}{
		{
			name:    "empty list is a no-op",
			entries: []sharedtypes.RankedEntry{},
			want:    []sharedtypes.RankedEntry{},
		},
		{
			name:    "single entry gets rank 1",
			entries: []sharedtypes.RankedEntry{entry("alice", 50, 0)},
			want:    []sharedtypes.RankedEntry{entry("alice", 50, 1)},
		},
		{
			name: "orders by score descending",
			entries: []sharedtypes.RankedEntry{
				entry("alice", 10, 0),
				entry("bob", 30, 0),
				entry("carol", 20, 0),
			},
			want: []sharedtypes.RankedEntry{
				entry("bob", 30, 1),
				entry("carol", 20, 2),
				entry("alice", 10, 3),
			},
		},
		{
			name: "equal scores keep prior relative order",
			entries: []sharedtypes.RankedEntry{
				entry("alice", 20, 0),
				entry("bob", 20, 0),
				entry("carol", 30, 0),
				entry("dave", 20, 0),
			},
			want: []sharedtypes.RankedEntry{
				entry("carol", 30, 1),
				entry("alice", 20, 2),
				entry("bob", 20, 3),
				entry("dave", 20, 4),
			},
		},
		{
			name: "already sorted input only reassigns ranks",
			entries: []sharedtypes.RankedEntry{
				entry("alice", 40, 7),
				entry("bob", 30, 9),
			},
			want: []sharedtypes.RankedEntry{
				entry("alice", 40, 1),
				entry("bob", 30, 2),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Rerank(tt.entries)
			if diff := cmp.Diff(tt.want, tt.entries); diff != "" {
				t.Errorf("Rerank() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRerankIdempotent(t *testing.T) {
	entries := []sharedtypes.RankedEntry{
		entry("alice", 20, 0),
		entry("bob", 20, 0),
		entry("carol", 50, 0),
	}
	Rerank(entries)
	first := make([]sharedtypes.RankedEntry, len(entries))
	copy(first, entries)

	Rerank(entries)
	if diff := cmp.Diff(first, entries); diff != "" {
		t.Errorf("second Rerank changed the list (-first +second):\n%s", diff)
	}
}

func TestRankOf(t *testing.T) {
	entries := []sharedtypes.RankedEntry{
		entry("alice", 30, 1),
		entry("bob", 20, 2),
	}

	rank, ok := RankOf(entries, "bob")
	if !ok || rank != 2 {
		t.Errorf("RankOf(bob) = (%d, %v), want (2, true)", rank, ok)
	}

	if _, ok := RankOf(entries, "nobody"); ok {
		t.Error("RankOf(nobody) reported a rank for an absent player")
	}
}

func TestUpsertScore(t *testing.T) {
	base := func() []sharedtypes.RankedEntry {
		return []sharedtypes.RankedEntry{
			entry("alice", 50, 1),
			entry("bob", 30, 2),
		}
	}

	t.Run("new player appended", func(t *testing.T) {
		got, changed := UpsertScore(base(), "carol", 40)
		if !changed {
			t.Fatal("appending a new player must report a change")
		}
		if len(got) != 3 || got[2].PlayerID != "carol" || got[2].Score != 40 {
			t.Errorf("UpsertScore() = %v, want carol/40 appended", got)
		}
	})

	t.Run("higher score replaces", func(t *testing.T) {
		got, changed := UpsertScore(base(), "bob", 60)
		if !changed {
			t.Fatal("a strictly higher score must report a change")
		}
		if got[1].Score != 60 {
			t.Errorf("bob's score = %d, want 60", got[1].Score)
		}
	})

	t.Run("equal score is a no-op", func(t *testing.T) {
		got, changed := UpsertScore(base(), "bob", 30)
		if changed {
			t.Error("an equal score must not report a change")
		}
		if got[1].Score != 30 {
			t.Errorf("bob's score = %d, want unchanged 30", got[1].Score)
		}
	})

	t.Run("lower score is a no-op", func(t *testing.T) {
		got, changed := UpsertScore(base(), "alice", 10)
		if changed {
			t.Error("a lower score must not report a change")
		}
		if got[0].Score != 50 {
			t.Errorf("alice's score = %d, want unchanged 50", got[0].Score)
		}
	})
}

func TestTrimTail(t *testing.T) {
	tests := []struct {
		name    string
		entries []sharedtypes.RankedEntry
		max     int
		wantLen int
		wantTop string
	}{
		{name: "under cap untouched", entries: []sharedtypes.RankedEntry{entry("a", 3, 1), entry("b", 2, 2)}, max: 5, wantLen: 2, wantTop: "a"},
		{name: "at cap untouched", entries: []sharedtypes.RankedEntry{entry("a", 3, 1), entry("b", 2, 2)}, max: 2, wantLen: 2, wantTop: "a"},
		{name: "over cap drops tail", entries: []sharedtypes.RankedEntry{entry("a", 3, 1), entry("b", 2, 2), entry("c", 1, 3)}, max: 2, wantLen: 2, wantTop: "a"},
		{name: "zero cap drops everything", entries: []sharedtypes.RankedEntry{entry("a", 3, 1)}, max: 0, wantLen: 0},
		{name: "negative cap treated as zero", entries: []sharedtypes.RankedEntry{entry("a", 3, 1)}, max: -1, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimTail(tt.entries, tt.max)
			if len(got) != tt.wantLen {
				t.Fatalf("TrimTail() len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && string(got[0].PlayerID) != tt.wantTop {
				t.Errorf("TrimTail() top = %s, want %s", got[0].PlayerID, tt.wantTop)
			}
		})
	}
}

func TestAppendBounded(t *testing.T) {
	record := func(score int64) sharedtypes.ScoreRecord {
		return sharedtypes.ScoreRecord{Score: sharedtypes.Score(score), GameID: "game-1"}
	}

	t.Run("appends under cap", func(t *testing.T) {
		records := []sharedtypes.ScoreRecord{record(1)}
		records = AppendBounded(records, record(2), 3)
		if len(records) != 2 || records[1].Score != 2 {
			t.Errorf("AppendBounded() = %v, want [1 2]", records)
		}
	})

	t.Run("evicts oldest first at cap", func(t *testing.T) {
		var records []sharedtypes.ScoreRecord
		for i := int64(1); i <= 5; i++ {
			records = AppendBounded(records, record(i), 3)
		}
		want := []sharedtypes.Score{3, 4, 5}
		if len(records) != 3 {
			t.Fatalf("AppendBounded() len = %d, want 3", len(records))
		}
		for i, w := range want {
			if records[i].Score != w {
				t.Errorf("records[%d].Score = %d, want %d", i, records[i].Score, w)
			}
		}
	})

	t.Run("high score evicted like any other once oldest", func(t *testing.T) {
		var records []sharedtypes.ScoreRecord
		records = AppendBounded(records, record(9999), 2)
		records = AppendBounded(records, record(1), 2)
		records = AppendBounded(records, record(2), 2)
		if records[0].Score != 1 || records[1].Score != 2 {
			t.Errorf("eviction considered score values: %v", records)
		}
	})
}

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
	}{
		{name: "first page", page: 0, pageSize: 3, want: []int{0, 1, 2}},
		{name: "middle page", page: 1, pageSize: 3, want: []int{3, 4, 5}},
		{name: "last partial page", page: 2, pageSize: 3, want: []int{6}},
		{name: "page past the end", page: 3, pageSize: 3, want: []int{}},
		{name: "far out of range", page: 1000000, pageSize: 1000000, want: []int{}},
		{name: "zero page size", page: 0, pageSize: 0, want: []int{}},
		{name: "negative page", page: -1, pageSize: 3, want: []int{}},
		{name: "page size beyond list", page: 0, pageSize: 50, want: []int{0, 1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.page, tt.pageSize)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Paginate(%d, %d) mismatch (-want +got):\n%s", tt.page, tt.pageSize, diff)
			}
		})
	}

	t.Run("empty input", func(t *testing.T) {
		if got := Paginate([]int{}, 0, 10); len(got) != 0 {
			t.Errorf("Paginate(empty) = %v, want empty", got)
		}
	})
}
