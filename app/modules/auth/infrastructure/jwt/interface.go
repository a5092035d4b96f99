package authjwt

import (
	"time"

	authdomain "github.com/Arcadelis/arcadis-scoring/app/modules/auth/domain"
)

// Provider defines the interface for platform JWT operations.
type Provider interface {
	// Generate creates a signed JWT for the given subject.
	Generate(subject string, ttl time.Duration) (string, error)

	// Validate validates a JWT and returns the claims if valid.
	Validate(tokenString string) (*authdomain.Claims, error)
}
