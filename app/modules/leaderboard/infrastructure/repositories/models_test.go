package leaderboarddb

import (
	"fmt"
	"testing"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

func boardWithEntries(entries ...sharedtypes.RankedEntry) *GlobalLeaderboard {
	return &GlobalLeaderboard{
		GameID:  "game-1",
		Entries: entries,
	}
}

// fullBoard builds a board holding exactly MaxBoardEntries players with
// scores descending from MaxBoardEntries+1 down to 2.
func fullBoard() *GlobalLeaderboard {
	entries := make([]sharedtypes.RankedEntry, MaxBoardEntries)
	for i := range entries {
		entries[i] = sharedtypes.RankedEntry{
			PlayerID: sharedtypes.PlayerID(fmt.Sprintf("p%04d", i)),
			Score:    sharedtypes.Score(MaxBoardEntries + 1 - i),
			Rank:     i + 1,
		}
	}
	return boardWithEntries(entries...)
}

func TestGlobalLeaderboard_ApplyScore(t *testing.T) {
	tests := []struct {
		name        string
		board       *GlobalLeaderboard
		playerID    sharedtypes.PlayerID
		score       sharedtypes.Score
		wantChanged bool
		wantTrimmed int
		wantRanks   map[sharedtypes.PlayerID]int
	}{
		{
			name: "new player is inserted and ranked",
			board: boardWithEntries(
				sharedtypes.RankedEntry{PlayerID: "a", Score: 90, Rank: 1},
				sharedtypes.RankedEntry{PlayerID: "b", Score: 70, Rank: 2},
			),
			playerID:    "c",
			score:       80,
			wantChanged: true,
			wantRanks:   map[sharedtypes.PlayerID]int{"a": 1, "c": 2, "b": 3},
		},
		{
			name: "higher score replaces the stored one",
			board: boardWithEntries(
				sharedtypes.RankedEntry{PlayerID: "a", Score: 90, Rank: 1},
				sharedtypes.RankedEntry{PlayerID: "b", Score: 70, Rank: 2},
			),
			playerID:    "b",
			score:       95,
			wantChanged: true,
			wantRanks:   map[sharedtypes.PlayerID]int{"b": 1, "a": 2},
		},
		{
			name: "equal score is a no-op",
			board: boardWithEntries(
				sharedtypes.RankedEntry{PlayerID: "a", Score: 90, Rank: 1},
			),
			playerID:    "a",
			score:       90,
			wantChanged: false,
		},
		{
			name: "lower score is a no-op",
			board: boardWithEntries(
				sharedtypes.RankedEntry{PlayerID: "a", Score: 90, Rank: 1},
			),
			playerID:    "a",
			score:       10,
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed, trimmed := tt.board.ApplyScore(tt.playerID, tt.score)

			if changed != tt.wantChanged {
				t.Errorf("expected changed=%v, got %v", tt.wantChanged, changed)
			}
			if trimmed != tt.wantTrimmed {
				t.Errorf("expected trimmed=%d, got %d", tt.wantTrimmed, trimmed)
			}
			for playerID, wantRank := range tt.wantRanks {
				found := false
				for _, entry := range tt.board.Entries {
					if entry.PlayerID == playerID {
						found = true
						if entry.Rank != wantRank {
							t.Errorf("player %s: expected rank %d, got %d", playerID, wantRank, entry.Rank)
						}
					}
				}
				if !found {
					t.Errorf("player %s missing from board", playerID)
				}
			}
		})
	}
}

func TestGlobalLeaderboard_ApplyScore_TrimsAtCapacity(t *testing.T) {
	t.Run("high score pushes the tail off the board", func(t *testing.T) {
		board := fullBoard()
		tailPlayer := board.Entries[len(board.Entries)-1].PlayerID

		changed, trimmed := board.ApplyScore("newcomer", sharedtypes.Score(MaxBoardEntries+50))

		if !changed {
			t.Fatal("expected the board to change")
		}
		if trimmed != 1 {
			t.Errorf("expected 1 trimmed entry, got %d", trimmed)
		}
		if len(board.Entries) != MaxBoardEntries {
			t.Errorf("expected board to stay at %d entries, got %d", MaxBoardEntries, len(board.Entries))
		}
		if board.Entries[0].PlayerID != "newcomer" || board.Entries[0].Rank != 1 {
			t.Errorf("expected newcomer at rank 1, got %+v", board.Entries[0])
		}
		for _, entry := range board.Entries {
			if entry.PlayerID == tailPlayer {
				t.Errorf("expected tail player %s to be trimmed", tailPlayer)
			}
		}
	})

	t.Run("low score still counts but falls off the board", func(t *testing.T) {
		board := fullBoard()

		changed, trimmed := board.ApplyScore("newcomer", 1)

		if !changed {
			t.Fatal("expected the board to change")
		}
		if trimmed != 1 {
			t.Errorf("expected 1 trimmed entry, got %d", trimmed)
		}
		if len(board.Entries) != MaxBoardEntries {
			t.Errorf("expected board to stay at %d entries, got %d", MaxBoardEntries, len(board.Entries))
		}
		for _, entry := range board.Entries {
			if entry.PlayerID == "newcomer" {
				t.Error("expected the newcomer to be trimmed off the tail")
			}
		}
	})
}
