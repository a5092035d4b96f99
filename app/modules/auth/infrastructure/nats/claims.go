package authnats

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nkeys"
)

// UserClaims represents NATS user JWT claims.
type UserClaims struct {
	Subject  string          `json:"sub"`
	Audience string          `json:"aud,omitempty"`
	Expires  int64           `json:"exp,omitempty"`
	IssuedAt int64           `json:"iat"`
	Issuer   string          `json:"iss"`
	Name     string          `json:"name,omitempty"`
	Nats     UserPermissions `json:"nats"`
}

// UserPermissions contains the NATS permissions for a user.
// Per the NATS JWT spec, type, version, and issuer_account go inside the nats object.
type UserPermissions struct {
	Pub           PermissionRules `json:"pub,omitempty"`
	Sub           PermissionRules `json:"sub,omitempty"`
	IssuerAccount string          `json:"issuer_account,omitempty"`
	Type          string          `json:"type"`
	Version       int             `json:"version"`
}

// PermissionRules contains allow/deny patterns.
type PermissionRules struct {
	Allow []string `json:"allow,omitempty"`
	Deny  []string `json:"deny,omitempty"`
}

// AuthorizationResponseClaims represents the claims in an auth callout response JWT.
type AuthorizationResponseClaims struct {
	Audience string                       `json:"aud,omitempty"`
	IssuedAt int64                        `json:"iat"`
	Issuer   string                       `json:"iss"`
	Subject  string                       `json:"sub"`
	Nats     AuthorizationResponsePayload `json:"nats"`
}

// AuthorizationResponsePayload contains the NATS-specific response data.
type AuthorizationResponsePayload struct {
	JWT     string `json:"jwt,omitempty"`
	Error   string `json:"error,omitempty"`
	Account string `json:"account,omitempty"`
	Type    string `json:"type"`
	Version int    `json:"version"`
}

// NewAuthorizationResponseClaims creates new authorization response claims.
// Subject must be the connecting user's public nkey; audience the server key.
func NewAuthorizationResponseClaims(audience string, subject string, issuerAccount string, userJWT string, errMsg string) *AuthorizationResponseClaims {
	return &AuthorizationResponseClaims{
		Audience: audience,
		IssuedAt: time.Now().Unix(),
		Subject:  subject,
		Nats: AuthorizationResponsePayload{
			JWT:     userJWT,
			Error:   errMsg,
			Account: issuerAccount,
			Type:    "authorization_response",
			Version: 2,
		},
	}
}

// NewUserClaims creates a new UserClaims with defaults.
func NewUserClaims(publicKey string) *UserClaims {
	return &UserClaims{
		Subject:  publicKey,
		IssuedAt: time.Now().Unix(),
		Nats: UserPermissions{
			Type:    "user",
			Version: 2,
		},
	}
}

// Encode encodes the authorization response claims as a signed JWT.
func (c *AuthorizationResponseClaims) Encode(kp nkeys.KeyPair) (string, error) {
	issuer, err := kp.PublicKey()
	if err != nil {
		return "", fmt.Errorf("failed to get issuer public key: %w", err)
	}
	c.Issuer = issuer
	return encodeNKeyJWT(c, kp)
}

// Encode encodes the user claims as a signed JWT.
func (c *UserClaims) Encode(kp nkeys.KeyPair) (string, error) {
	issuer, err := kp.PublicKey()
	if err != nil {
		return "", fmt.Errorf("failed to get issuer public key: %w", err)
	}
	c.Issuer = issuer
	return encodeNKeyJWT(c, kp)
}

// encodeNKeyJWT serializes claims into an ed25519-nkey signed JWT.
func encodeNKeyJWT(claims any, kp nkeys.KeyPair) (string, error) {
	header := map[string]string{
		"typ": "JWT",
		"alg": "ed25519-nkey",
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}

	headerB64 := base64.RawURLEncoding.EncodeToString(headerJSON)
	claimsB64 := base64.RawURLEncoding.EncodeToString(claimsJSON)
	signingInput := headerB64 + "." + claimsB64

	sig, err := kp.Sign([]byte(signingInput))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}
