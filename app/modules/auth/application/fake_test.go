package authservice

import (
	"time"

	authdomain "github.com/Arcadelis/arcadis-scoring/app/modules/auth/domain"
	authjwt "github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/jwt"
	"github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/permissions"
)

// FakeJWTProvider implements authjwt.Provider for service tests.
type FakeJWTProvider struct {
	GenerateFunc func(subject string, ttl time.Duration) (string, error)
	ValidateFunc func(tokenString string) (*authdomain.Claims, error)
}

func (f *FakeJWTProvider) Generate(subject string, ttl time.Duration) (string, error) {
	if f.GenerateFunc != nil {
		return f.GenerateFunc(subject, ttl)
	}
	return "signed-token", nil
}

func (f *FakeJWTProvider) Validate(tokenString string) (*authdomain.Claims, error) {
	if f.ValidateFunc != nil {
		return f.ValidateFunc(tokenString)
	}
	return nil, authjwt.ErrInvalidToken
}

var _ authjwt.Provider = (*FakeJWTProvider)(nil)

// FakeUserJWTBuilder implements authnats.UserJWTBuilder for service tests.
type FakeUserJWTBuilder struct {
	BuildUserJWTFunc      func(claims *authdomain.Claims, userNkey string, perms *permissions.Permissions) (string, error)
	BuildAuthResponseFunc func(userNkey, serverPublicKey, userJWT, errMsg string) (string, error)
}

func (f *FakeUserJWTBuilder) BuildUserJWT(claims *authdomain.Claims, userNkey string, perms *permissions.Permissions) (string, error) {
	if f.BuildUserJWTFunc != nil {
		return f.BuildUserJWTFunc(claims, userNkey, perms)
	}
	return "user-jwt", nil
}

func (f *FakeUserJWTBuilder) BuildAuthResponse(userNkey, serverPublicKey, userJWT, errMsg string) (string, error) {
	if f.BuildAuthResponseFunc != nil {
		return f.BuildAuthResponseFunc(userNkey, serverPublicKey, userJWT, errMsg)
	}
	return "signed-response", nil
}
