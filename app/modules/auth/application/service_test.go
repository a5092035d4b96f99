package authservice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	authdomain "github.com/Arcadelis/arcadis-scoring/app/modules/auth/domain"
	authjwt "github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/jwt"
	"github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/permissions"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestAuthService(provider *FakeJWTProvider, builder *FakeUserJWTBuilder) Service {
	svc := &service{
		jwtProvider:       provider,
		permissionBuilder: permissions.NewBuilder(),
		config: Config{
			ClientID:     "arcadisctl",
			ClientSecret: "s3cret",
			DefaultTTL:   time.Hour,
		},
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
		tracer: noop.NewTracerProvider().Tracer("test"),
	}
	if builder != nil {
		svc.userJWTBuilder = builder
	}
	return svc
}

func TestAuthService_IssueToken(t *testing.T) {
	t.Run("valid credentials mint a token", func(t *testing.T) {
		provider := &FakeJWTProvider{
			GenerateFunc: func(subject string, ttl time.Duration) (string, error) {
				if subject != "player-1" {
					t.Errorf("subject = %s, want player-1", subject)
				}
				return "signed-token", nil
			},
		}
		s := newTestAuthService(provider, nil)

		resp, err := s.IssueToken(context.Background(), "arcadisctl", "s3cret", "player-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.AccessToken != "signed-token" || resp.TokenType != "Bearer" {
			t.Errorf("unexpected response: %+v", resp)
		}
		if resp.ExpiresIn != 3600 {
			t.Errorf("expires_in = %d, want 3600", resp.ExpiresIn)
		}
	})

	t.Run("empty subject defaults to client id", func(t *testing.T) {
		provider := &FakeJWTProvider{
			GenerateFunc: func(subject string, ttl time.Duration) (string, error) {
				if subject != "arcadisctl" {
					t.Errorf("subject = %s, want arcadisctl", subject)
				}
				return "signed-token", nil
			},
		}
		s := newTestAuthService(provider, nil)

		if _, err := s.IssueToken(context.Background(), "arcadisctl", "s3cret", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		s := newTestAuthService(&FakeJWTProvider{}, nil)

		if _, err := s.IssueToken(context.Background(), "arcadisctl", "wrong", ""); !errors.Is(err, ErrInvalidClient) {
			t.Errorf("expected ErrInvalidClient, got %v", err)
		}
	})

	t.Run("unknown client is rejected", func(t *testing.T) {
		s := newTestAuthService(&FakeJWTProvider{}, nil)

		if _, err := s.IssueToken(context.Background(), "intruder", "s3cret", ""); !errors.Is(err, ErrInvalidClient) {
			t.Errorf("expected ErrInvalidClient, got %v", err)
		}
	})
}

func TestAuthService_VerifySubmitter(t *testing.T) {
	validClaims := &authdomain.Claims{
		Subject:   "player-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	tests := []struct {
		name     string
		validate func(tokenString string) (*authdomain.Claims, error)
		token    string
		playerID sharedtypes.PlayerID
		wantErr  bool
	}{
		{
			name: "matching subject passes",
			validate: func(string) (*authdomain.Claims, error) {
				return validClaims, nil
			},
			token:    "good-token",
			playerID: "player-1",
		},
		{
			name: "subject mismatch is unauthorized",
			validate: func(string) (*authdomain.Claims, error) {
				return validClaims, nil
			},
			token:    "good-token",
			playerID: "player-2",
			wantErr:  true,
		},
		{
			name: "invalid token is unauthorized",
			validate: func(string) (*authdomain.Claims, error) {
				return nil, authjwt.ErrInvalidToken
			},
			token:    "bad-token",
			playerID: "player-1",
			wantErr:  true,
		},
		{
			name: "expired token is unauthorized",
			validate: func(string) (*authdomain.Claims, error) {
				return nil, authjwt.ErrExpiredToken
			},
			token:    "old-token",
			playerID: "player-1",
			wantErr:  true,
		},
		{
			name:     "missing token is unauthorized",
			token:    "",
			playerID: "player-1",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestAuthService(&FakeJWTProvider{ValidateFunc: tt.validate}, nil)

			err := s.VerifySubmitter(context.Background(), tt.token, tt.playerID)
			if tt.wantErr {
				if !errors.Is(err, sharedtypes.ErrUnauthorized) {
					t.Errorf("expected ErrUnauthorized, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthService_HandleNATSAuthRequest(t *testing.T) {
	req := &NATSAuthRequest{
		UserNkey:        "UABC",
		ServerPublicKey: "NSERVER",
		ConnectOpts:     ConnectOptions{Password: "platform-token"},
	}

	t.Run("valid token yields signed response", func(t *testing.T) {
		provider := &FakeJWTProvider{
			ValidateFunc: func(string) (*authdomain.Claims, error) {
				return &authdomain.Claims{Subject: "player-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
			},
		}
		builder := &FakeUserJWTBuilder{}
		s := newTestAuthService(provider, builder)

		resp, err := s.HandleNATSAuthRequest(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Error != "" {
			t.Fatalf("unexpected denial: %s", resp.Error)
		}
		if resp.Jwt != "user-jwt" || resp.SignedResponse != "signed-response" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("invalid token yields signed denial", func(t *testing.T) {
		provider := &FakeJWTProvider{}
		builder := &FakeUserJWTBuilder{
			BuildAuthResponseFunc: func(userNkey, serverPublicKey, userJWT, errMsg string) (string, error) {
				if errMsg == "" {
					t.Error("denial must carry an error message")
				}
				if userJWT != "" {
					t.Error("denial must not carry a user JWT")
				}
				return "signed-denial", nil
			},
		}
		s := newTestAuthService(provider, builder)

		resp, err := s.HandleNATSAuthRequest(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Error == "" || resp.SignedResponse != "signed-denial" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("missing token is denied", func(t *testing.T) {
		s := newTestAuthService(&FakeJWTProvider{}, &FakeUserJWTBuilder{})

		resp, err := s.HandleNATSAuthRequest(context.Background(), &NATSAuthRequest{UserNkey: "UABC"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Error == "" {
			t.Error("expected denial for missing token")
		}
	})

	t.Run("no builder configured is denied", func(t *testing.T) {
		s := newTestAuthService(&FakeJWTProvider{}, nil)

		resp, err := s.HandleNATSAuthRequest(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Error == "" {
			t.Error("expected denial without a JWT builder")
		}
	})
}
