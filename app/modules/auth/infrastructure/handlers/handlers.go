package authhandlers

import (
	"log/slog"
	"net/http"

	authservice "github.com/Arcadelis/arcadis-scoring/app/modules/auth/application"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
)

// Handlers defines the auth module's HTTP and NATS entry points.
type Handlers interface {
	HandleToken(w http.ResponseWriter, r *http.Request)
	HandleVerify(w http.ResponseWriter, r *http.Request)
	HandleNATSAuthCallout(msg *nats.Msg)
}

// AuthHandlers implements the Handlers interface.
type AuthHandlers struct {
	service authservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(
	service authservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &AuthHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}
