package utils

import (
	"context"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Metadata keys stamped onto every message flowing through a module router.
const (
	ServiceMetadataKey     = "service"
	ReceivedAtMetadataKey  = "received_at"
	AuthTokenMetadataKey   = "authorization"
	AuthSubjectMetadataKey = "auth_subject"
)

type contextKey string

const authTokenContextKey contextKey = "auth_token"

// MiddlewareHelpers builds watermill router middleware.
type MiddlewareHelpers struct{}

// NewMiddlewareHelper creates a MiddlewareHelpers.
func NewMiddlewareHelper() *MiddlewareHelpers {
	return &MiddlewareHelpers{}
}

// CommonMetadataMiddleware stamps the owning service and receive time onto
// each message before it reaches a handler.
func (m *MiddlewareHelpers) CommonMetadataMiddleware(service string) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			msg.Metadata.Set(ServiceMetadataKey, service)
			msg.Metadata.Set(ReceivedAtMetadataKey, time.Now().UTC().Format(time.RFC3339))
			return h(msg)
		}
	}
}

// IdentityMetadataMiddleware lifts the bearer token out of message metadata
// into the message context so services can verify the submitter without
// seeing transport details.
func (m *MiddlewareHelpers) IdentityMetadataMiddleware() message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			token := msg.Metadata.Get(AuthTokenMetadataKey)
			token = strings.TrimPrefix(token, "Bearer ")
			if token != "" {
				msg.SetContext(WithAuthToken(msg.Context(), token))
			}
			return h(msg)
		}
	}
}

// WithAuthToken returns a context carrying the submitter's bearer token.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenContextKey, token)
}

// AuthTokenFromContext returns the bearer token lifted from message metadata,
// or "" when the request carried none.
func AuthTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(authTokenContextKey).(string)
	return token
}
