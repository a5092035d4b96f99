package authnats

import (
	authdomain "github.com/Arcadelis/arcadis-scoring/app/modules/auth/domain"
	"github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/permissions"
)

// UserJWTBuilder builds signed NATS JWTs for the auth callout flow.
type UserJWTBuilder interface {
	// BuildUserJWT creates a NATS user JWT for the connecting user's nkey
	// with the specified permissions.
	BuildUserJWT(claims *authdomain.Claims, userNkey string, perms *permissions.Permissions) (string, error)

	// BuildAuthResponse wraps a user JWT (or an error) in a signed
	// authorization response addressed to the requesting server.
	BuildAuthResponse(userNkey, serverPublicKey, userJWT, errMsg string) (string, error)
}
