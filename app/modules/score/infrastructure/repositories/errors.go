package scoredb

import "errors"

// ErrNotFound indicates the player has no history document yet. Callers
// treat this as an empty history, not a failure.
var ErrNotFound = errors.New("player history not found")
