package authnats

import (
	"fmt"
	"time"

	authdomain "github.com/Arcadelis/arcadis-scoring/app/modules/auth/domain"
	"github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/permissions"
	"github.com/nats-io/nkeys"
)

// userJWTBuilder implements the UserJWTBuilder interface.
type userJWTBuilder struct {
	signingKey    nkeys.KeyPair
	issuerAccount string
}

// NewUserJWTBuilder creates a new UserJWTBuilder. The signing key must match
// the auth_callout issuer configured on the NATS server.
func NewUserJWTBuilder(signingKey nkeys.KeyPair, issuerAccount string) UserJWTBuilder {
	return &userJWTBuilder{
		signingKey:    signingKey,
		issuerAccount: issuerAccount,
	}
}

// BuildUserJWT creates a NATS user JWT with the specified permissions. The
// JWT expires with the platform token so a revoked identity cannot outlive
// its credentials on the bus.
func (b *userJWTBuilder) BuildUserJWT(claims *authdomain.Claims, userNkey string, perms *permissions.Permissions) (string, error) {
	uc := NewUserClaims(userNkey)
	uc.Name = claims.Subject
	uc.Audience = b.issuerAccount
	uc.Nats.IssuerAccount = b.issuerAccount

	expires := claims.ExpiresAt
	if expires.IsZero() {
		expires = time.Now().Add(time.Hour)
	}
	uc.Expires = expires.Unix()

	uc.Nats.Pub.Allow = perms.Publish.Allow
	uc.Nats.Pub.Deny = perms.Publish.Deny
	uc.Nats.Sub.Allow = perms.Subscribe.Allow
	uc.Nats.Sub.Deny = perms.Subscribe.Deny

	token, err := uc.Encode(b.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to encode user claims: %w", err)
	}

	return token, nil
}

// BuildAuthResponse signs the authorization response the NATS server expects
// on the callout reply.
func (b *userJWTBuilder) BuildAuthResponse(userNkey, serverPublicKey, userJWT, errMsg string) (string, error) {
	rc := NewAuthorizationResponseClaims(serverPublicKey, userNkey, b.issuerAccount, userJWT, errMsg)

	token, err := rc.Encode(b.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to encode authorization response: %w", err)
	}

	return token, nil
}
