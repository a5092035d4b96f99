package tournamentqueue

import (
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// TournamentStartJob fires when a tournament's start time arrives.
// The worker publishes a tournament.started event.
type TournamentStartJob struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	GameID       sharedtypes.GameID       `json:"game_id"`
}

// Kind returns the job type identifier for River.
func (TournamentStartJob) Kind() string { return "tournament_start" }

// TournamentEndJob fires when a tournament's end time passes.
// The worker publishes a tournament.ended event; results become readable
// from that moment on.
type TournamentEndJob struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	GameID       sharedtypes.GameID       `json:"game_id"`
}

// Kind returns the job type identifier for River.
func (TournamentEndJob) Kind() string { return "tournament_end" }

// JobInfo describes a scheduled job for debugging and monitoring.
type JobInfo struct {
	ID           int64  `json:"id"`
	Kind         string `json:"kind"`
	TournamentID string `json:"tournament_id"`
	State        string `json:"state"`
	ScheduledAt  string `json:"scheduled_at"`
	CreatedAt    string `json:"created_at"`
	Attempt      int    `json:"attempt"`
	MaxAttempts  int    `json:"max_attempts"`
}
