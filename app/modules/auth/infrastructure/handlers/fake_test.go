package authhandlers

import (
	"context"

	authservice "github.com/Arcadelis/arcadis-scoring/app/modules/auth/application"
	authdomain "github.com/Arcadelis/arcadis-scoring/app/modules/auth/domain"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
)

// FakeService implements authservice.Service for handler tests.
type FakeService struct {
	IssueTokenFunc            func(ctx context.Context, clientID, clientSecret, subject string) (*authservice.TokenResponse, error)
	ValidateTokenFunc         func(ctx context.Context, tokenString string) (*authdomain.Claims, error)
	VerifySubmitterFunc       func(ctx context.Context, token string, playerID sharedtypes.PlayerID) error
	HandleNATSAuthRequestFunc func(ctx context.Context, req *authservice.NATSAuthRequest) (*authservice.NATSAuthResponse, error)
}

func NewFakeService() *FakeService {
	return &FakeService{}
}

func (f *FakeService) IssueToken(ctx context.Context, clientID, clientSecret, subject string) (*authservice.TokenResponse, error) {
	if f.IssueTokenFunc != nil {
		return f.IssueTokenFunc(ctx, clientID, clientSecret, subject)
	}
	return nil, authservice.ErrInvalidClient
}

func (f *FakeService) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(ctx, tokenString)
	}
	return nil, authservice.ErrMissingToken
}

func (f *FakeService) VerifySubmitter(ctx context.Context, token string, playerID sharedtypes.PlayerID) error {
	if f.VerifySubmitterFunc != nil {
		return f.VerifySubmitterFunc(ctx, token, playerID)
	}
	return sharedtypes.ErrUnauthorized
}

func (f *FakeService) HandleNATSAuthRequest(ctx context.Context, req *authservice.NATSAuthRequest) (*authservice.NATSAuthResponse, error) {
	if f.HandleNATSAuthRequestFunc != nil {
		return f.HandleNATSAuthRequestFunc(ctx, req)
	}
	return &authservice.NATSAuthResponse{}, nil
}

var _ authservice.Service = (*FakeService)(nil)
