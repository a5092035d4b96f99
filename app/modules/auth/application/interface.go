package authservice

import (
	"context"

	authdomain "github.com/Arcadelis/arcadis-scoring/app/modules/auth/domain"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// Service defines the authentication service interface.
type Service interface {
	// IssueToken validates client credentials and mints a platform JWT for
	// the requested subject.
	IssueToken(ctx context.Context, clientID, clientSecret, subject string) (*TokenResponse, error)

	// ValidateToken validates a platform JWT and returns the claims if valid.
	ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error)

	// VerifySubmitter checks that the token's subject is the given player.
	VerifySubmitter(ctx context.Context, token string, playerID sharedtypes.PlayerID) error

	// HandleNATSAuthRequest processes a NATS auth callout request.
	HandleNATSAuthRequest(ctx context.Context, req *NATSAuthRequest) (*NATSAuthResponse, error)
}

// TokenResponse is the OAuth2-style token endpoint payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// NATSAuthRequest represents a NATS auth callout request.
type NATSAuthRequest struct {
	UserNkey        string         `json:"user_nkey"`
	ServerPublicKey string         `json:"server_public_key"` // aud for the response
	ConnectOpts     ConnectOptions `json:"connect_opts"`
	ClientInfo      ClientInfo     `json:"client_info"`
}

// ConnectOptions contains the connection options from the auth request.
type ConnectOptions struct {
	Password string `json:"pass"` // Carries the platform JWT
	User     string `json:"user,omitempty"`
}

// ClientInfo contains client information from the auth request.
type ClientInfo struct {
	Host string `json:"host,omitempty"`
	ID   uint64 `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// NATSAuthResponse represents the response to a NATS auth callout.
type NATSAuthResponse struct {
	Jwt            string `json:"jwt,omitempty"`             // The user JWT (for logging)
	Error          string `json:"error,omitempty"`           // Error message if auth failed
	SignedResponse string `json:"signed_response,omitempty"` // Signed response JWT for the server
}
