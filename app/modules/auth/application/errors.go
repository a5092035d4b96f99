package authservice

import "errors"

var (
	// ErrMissingToken is returned when no token is provided.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrInvalidClient is returned when client credentials do not match.
	ErrInvalidClient = errors.New("invalid client credentials")

	// ErrGenerateToken is returned when token generation fails.
	ErrGenerateToken = errors.New("failed to generate token")

	// ErrGenerateUserJWT is returned when NATS user JWT generation fails.
	ErrGenerateUserJWT = errors.New("failed to generate user credentials")
)
