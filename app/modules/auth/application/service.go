package authservice

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	authdomain "github.com/Arcadelis/arcadis-scoring/app/modules/auth/domain"
	authjwt "github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/jwt"
	authnats "github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/nats"
	"github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/permissions"
	"github.com/Arcadelis/arcadis-scoring/internal/attr"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"go.opentelemetry.io/otel/trace"
)

// Config holds the configuration for the auth service.
type Config struct {
	ClientID     string
	ClientSecret string
	DefaultTTL   time.Duration
}

// DefaultTokenTTL applies when no TTL is configured.
const DefaultTokenTTL = time.Hour

// service implements the Service interface.
type service struct {
	jwtProvider       authjwt.Provider
	userJWTBuilder    authnats.UserJWTBuilder
	permissionBuilder *permissions.Builder
	config            Config
	logger            *slog.Logger
	tracer            trace.Tracer
}

// NewService creates a new auth service.
func NewService(
	jwtProvider authjwt.Provider,
	userJWTBuilder authnats.UserJWTBuilder,
	config Config,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		jwtProvider:       jwtProvider,
		userJWTBuilder:    userJWTBuilder,
		permissionBuilder: permissions.NewBuilder(),
		config:            config,
		logger:            logger,
		tracer:            tracer,
	}
}

// IssueToken validates client credentials and mints a platform JWT. The
// subject defaults to the client ID so service clients get a usable identity
// without an extra parameter.
func (s *service) IssueToken(ctx context.Context, clientID, clientSecret, subject string) (*TokenResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.IssueToken")
	defer span.End()

	if !s.credentialsMatch(clientID, clientSecret) {
		s.logger.WarnContext(ctx, "Token request with invalid client credentials",
			attr.String("client_id", clientID),
		)
		return nil, ErrInvalidClient
	}

	if subject == "" {
		subject = clientID
	}

	ttl := s.config.DefaultTTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}

	token, err := s.jwtProvider.Generate(subject, ttl)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token",
			attr.Error(err),
			attr.String("subject", subject),
		)
		return nil, fmt.Errorf("%w: %v", ErrGenerateToken, err)
	}

	s.logger.InfoContext(ctx, "Token issued",
		attr.String("client_id", clientID),
		attr.String("subject", subject),
	)

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}

func (s *service) credentialsMatch(clientID, clientSecret string) bool {
	if s.config.ClientID == "" || s.config.ClientSecret == "" {
		return false
	}
	idOK := subtle.ConstantTimeCompare([]byte(clientID), []byte(s.config.ClientID)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(clientSecret), []byte(s.config.ClientSecret)) == 1
	return idOK && secretOK
}

// ValidateToken validates a platform JWT and returns the claims if valid.
func (s *service) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.ValidateToken")
	defer span.End()

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.jwtProvider.Validate(tokenString)
	if err != nil {
		s.logger.WarnContext(ctx, "Token validation failed",
			attr.Error(err),
		)
		return nil, err
	}

	s.logger.DebugContext(ctx, "Token validated successfully",
		attr.String("subject", claims.Subject),
	)

	return claims, nil
}

// VerifySubmitter checks that the token belongs to the player a submission
// names. Any validation failure maps to the shared Unauthorized error so the
// score module never learns why a token was rejected.
func (s *service) VerifySubmitter(ctx context.Context, token string, playerID sharedtypes.PlayerID) error {
	claims, err := s.ValidateToken(ctx, token)
	if err != nil {
		return fmt.Errorf("%w: %v", sharedtypes.ErrUnauthorized, err)
	}

	if claims.Subject != string(playerID) {
		s.logger.WarnContext(ctx, "Submitter identity mismatch",
			attr.String("subject", claims.Subject),
			attr.PlayerID(playerID),
		)
		return fmt.Errorf("%w: token subject does not match player", sharedtypes.ErrUnauthorized)
	}

	return nil
}

// HandleNATSAuthRequest processes a NATS auth callout request: validate the
// presented platform JWT, then sign a NATS user JWT limited to the subjects
// the identity may use.
func (s *service) HandleNATSAuthRequest(ctx context.Context, req *NATSAuthRequest) (*NATSAuthResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.HandleNATSAuthRequest")
	defer span.End()

	s.logger.DebugContext(ctx, "Processing auth callout request",
		attr.String("client_host", req.ClientInfo.Host),
		attr.Any("client_id", req.ClientInfo.ID),
	)

	if s.userJWTBuilder == nil {
		s.logger.ErrorContext(ctx, "NATS JWT builder not configured")
		return &NATSAuthResponse{Error: ErrGenerateUserJWT.Error()}, nil
	}

	tokenString := req.ConnectOpts.Password
	if tokenString == "" {
		s.logger.WarnContext(ctx, "Auth request missing password/token")
		return s.deniedResponse(ctx, req, ErrMissingToken.Error()), nil
	}

	claims, err := s.jwtProvider.Validate(tokenString)
	if err != nil {
		s.logger.WarnContext(ctx, "Token validation failed",
			attr.Error(err),
			attr.String("client_host", req.ClientInfo.Host),
		)
		return s.deniedResponse(ctx, req, fmt.Sprintf("invalid token: %v", err)), nil
	}

	perms := s.permissionBuilder.ForSubject(claims.Subject)

	userJWT, err := s.userJWTBuilder.BuildUserJWT(claims, req.UserNkey, perms)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate user JWT",
			attr.Error(err),
			attr.String("subject", claims.Subject),
		)
		return s.deniedResponse(ctx, req, ErrGenerateUserJWT.Error()), nil
	}

	signed, err := s.userJWTBuilder.BuildAuthResponse(req.UserNkey, req.ServerPublicKey, userJWT, "")
	if err != nil {
		return nil, fmt.Errorf("failed to sign auth response: %w", err)
	}

	s.logger.InfoContext(ctx, "Auth callout approved",
		attr.String("subject", claims.Subject),
	)

	return &NATSAuthResponse{
		Jwt:            userJWT,
		SignedResponse: signed,
	}, nil
}

// deniedResponse signs a response carrying only the denial so the server can
// reject the connection with a reason.
func (s *service) deniedResponse(ctx context.Context, req *NATSAuthRequest, errMsg string) *NATSAuthResponse {
	signed, err := s.userJWTBuilder.BuildAuthResponse(req.UserNkey, req.ServerPublicKey, "", errMsg)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to sign denial response",
			attr.Error(err),
		)
		return &NATSAuthResponse{Error: errMsg}
	}
	return &NATSAuthResponse{
		Error:          errMsg,
		SignedResponse: signed,
	}
}
