// Package ranking is the ordering engine behind tournament and global
// leaderboards. Storage keeps entry lists as opaque documents; every ordering,
// bounding, and pagination decision happens here.
package ranking

import (
	"sort"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// Rerank orders entries strictly score-descending and assigns 1-based ranks.
// The sort is stable: entries with equal scores keep their prior relative
// order, so an earlier submitter holds the better rank until beaten outright.
func Rerank(entries []sharedtypes.RankedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// RankOf returns the rank of playerID within entries, or false when the
// player holds no entry.
func RankOf(entries []sharedtypes.RankedEntry, playerID sharedtypes.PlayerID) (int, bool) {
	for _, entry := range entries {
		if entry.PlayerID == playerID {
			return entry.Rank, true
		}
	}
	return 0, false
}

// UpsertScore applies the improve-only rule to entries: an absent player is
// appended, a present player's score only ever moves upward. The boolean
// reports whether the list changed; an equal or lower score for a present
// player is a no-op. Ranks are stale afterwards — call Rerank.
func UpsertScore(entries []sharedtypes.RankedEntry, playerID sharedtypes.PlayerID, score sharedtypes.Score) ([]sharedtypes.RankedEntry, bool) {
	for i := range entries {
		if entries[i].PlayerID == playerID {
			if score > entries[i].Score {
				entries[i].Score = score
				return entries, true
			}
			return entries, false
		}
	}
	return append(entries, sharedtypes.RankedEntry{PlayerID: playerID, Score: score}), true
}

// TrimTail caps entries at max by dropping the lowest-ranked tail. Order is
// untouched; call after Rerank.
func TrimTail(entries []sharedtypes.RankedEntry, max int) []sharedtypes.RankedEntry {
	if max < 0 {
		max = 0
	}
	if len(entries) <= max {
		return entries
	}
	return entries[:max]
}

// AppendBounded appends record and then evicts the oldest records from the
// head until at most max remain. Eviction is strictly FIFO; score values play
// no part.
func AppendBounded(records []sharedtypes.ScoreRecord, record sharedtypes.ScoreRecord, max int) []sharedtypes.ScoreRecord {
	records = append(records, record)
	if max < 0 {
		max = 0
	}
	if len(records) > max {
		records = records[len(records)-max:]
	}
	return records
}

// Paginate returns the zero-based page of items. Out-of-range pages and a
// non-positive pageSize yield an empty page, never an error.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 0 || pageSize <= 0 || len(items)/pageSize < page {
		return []T{}
	}
	start := page * pageSize
	end := len(items)
	if end-start > pageSize {
		end = start + pageSize
	}
	return items[start:end]
}
