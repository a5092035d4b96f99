package authdomain

import "time"

// Claims is the domain model for a validated platform token. Subject is the
// identity the token was issued for: a player ID or a service client ID.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
