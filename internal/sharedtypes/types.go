package sharedtypes

import "time"

// GameID identifies a game title on the platform.
type GameID string

// PlayerID identifies a player across all games and tournaments.
type PlayerID string

// TournamentID identifies a single tournament.
type TournamentID string

// Score is a point total. Higher is better.
type Score int64

// Timestamp is a unix timestamp in seconds.
type Timestamp int64

// TimestampFromTime converts a time.Time to a Timestamp.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp(t.Unix())
}

// AsTime converts the Timestamp to a time.Time in UTC.
func (t Timestamp) AsTime() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// RankedEntry is a single position on a leaderboard. Rank is 1-based and
// only meaningful after the entry list has been reranked.
type RankedEntry struct {
	PlayerID PlayerID `json:"player_id"`
	Score    Score    `json:"score"`
	Rank     int      `json:"rank"`
}

// ScoreRecord is one entry in a player's submission history.
type ScoreRecord struct {
	Score        Score        `json:"score"`
	Timestamp    Timestamp    `json:"timestamp"`
	GameID       GameID       `json:"game_id"`
	TournamentID TournamentID `json:"tournament_id"`
}

// TournamentStatus describes where a tournament sits in its lifecycle.
type TournamentStatus string

const (
	TournamentUpcoming TournamentStatus = "upcoming"
	TournamentActive   TournamentStatus = "active"
	TournamentEnded    TournamentStatus = "ended"
)
