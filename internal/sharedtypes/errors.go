package sharedtypes

import "errors"

// Domain failures shared across modules. Services surface these through
// failure payloads; callers match them with errors.Is.
var (
	ErrTournamentExists    = errors.New("tournament already exists")
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrTournamentNotActive = errors.New("tournament is not active")
	ErrTournamentFull      = errors.New("tournament is full")
	ErrInvalidParameters   = errors.New("invalid parameters")
	ErrUnauthorized        = errors.New("unauthorized")
)

// ErrorCode returns the stable wire code for a domain failure, or "internal"
// for anything unrecognized.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrTournamentExists):
		return "tournament_exists"
	case errors.Is(err, ErrTournamentNotFound):
		return "tournament_not_found"
	case errors.Is(err, ErrTournamentNotActive):
		return "tournament_not_active"
	case errors.Is(err, ErrTournamentFull):
		return "tournament_full"
	case errors.Is(err, ErrInvalidParameters):
		return "invalid_parameters"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "internal"
	}
}
