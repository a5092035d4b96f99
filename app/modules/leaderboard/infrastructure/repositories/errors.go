package leaderboarddb

import "errors"

// Infrastructure signals; the service layer decides which domain failure
// they translate to.
var (
	ErrNotFound       = errors.New("leaderboard not found")
	ErrNoRowsAffected = errors.New("no rows affected")
)
