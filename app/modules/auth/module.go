package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	authservice "github.com/Arcadelis/arcadis-scoring/app/modules/auth/application"
	authhandlers "github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/jwt"
	authnats "github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/nats"
	authrouter "github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/router"
	"github.com/Arcadelis/arcadis-scoring/config"
	"github.com/Arcadelis/arcadis-scoring/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// Module represents the auth module: identity provider for the platform and
// guard for score submission.
type Module struct {
	config        *config.Config
	observability observability.Observability
	service       authservice.Service
	handlers      authhandlers.Handlers
	router        *authrouter.Router
	cancelFunc    context.CancelFunc
	logger        *slog.Logger
}

// NewModule creates a new auth module and mounts its HTTP routes.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	nc *nats.Conn,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "Initializing auth module")

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	// The NATS JWT builder signs callout responses with the account key the
	// server's auth_callout.issuer names.
	var userJWTBuilder authnats.UserJWTBuilder
	if cfg.AuthCallout.Enabled {
		accountKey, err := nkeys.FromSeed([]byte(cfg.AuthCallout.IssuerNKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse account key: %w", err)
		}
		userJWTBuilder = authnats.NewUserJWTBuilder(accountKey, cfg.AuthCallout.IssuerAccount)
	}

	service := authservice.NewService(
		jwtProvider,
		userJWTBuilder,
		authservice.Config{
			ClientID:     cfg.Clients.ID,
			ClientSecret: cfg.Clients.Secret,
			DefaultTTL:   cfg.JWT.DefaultTTL,
		},
		logger,
		tracer,
	)

	handlers := authhandlers.NewAuthHandlers(service, logger, tracer)

	router := authrouter.NewRouter(handlers, nc)

	if httpRouter != nil {
		limiter := authhandlers.NewIPRateLimiter(5, 10)
		httpRouter.Route("/api/auth", func(r chi.Router) {
			r.Use(authhandlers.CORSMiddleware(cfg.HTTP.AllowedOrigins))
			r.Use(authhandlers.RateLimitMiddleware(limiter))

			// Public routes
			r.Post("/token", handlers.HandleToken)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(authhandlers.AuthMiddleware)
				r.Get("/verify", handlers.HandleVerify)
			})
		})
	}

	module := &Module{
		config:        cfg,
		observability: obs,
		service:       service,
		handlers:      handlers,
		router:        router,
		logger:        logger,
	}

	return module, nil
}

// Run starts the auth module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting auth module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.config.AuthCallout.Enabled {
		if err := m.router.Start(m.config.AuthCallout.Subject); err != nil {
			m.logger.ErrorContext(ctx, "Failed to start auth router",
				"error", err,
			)
			return
		}
		m.logger.InfoContext(ctx, "Auth callout listening",
			"subject", m.config.AuthCallout.Subject,
		)
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Auth module goroutine stopped")
}

// Close stops the auth module.
func (m *Module) Close() error {
	m.logger.Info("Stopping auth module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.router != nil {
		if err := m.router.Stop(); err != nil {
			m.logger.Error("Error stopping auth router", "error", err)
			return fmt.Errorf("error stopping router: %w", err)
		}
	}

	m.logger.Info("Auth module stopped")
	return nil
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}
