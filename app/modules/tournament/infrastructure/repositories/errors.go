package tournamentdb

import "errors"

// Repository-level sentinel errors. These are infrastructure signals; the
// service layer decides which domain failure they translate to.
var (
	// ErrNotFound indicates the requested tournament does not exist.
	ErrNotFound = errors.New("tournament not found")

	// ErrAlreadyExists indicates an insert collided with an existing row.
	ErrAlreadyExists = errors.New("tournament already exists")

	// ErrNoRowsAffected indicates an update matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)
