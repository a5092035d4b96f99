package authrouter

import (
	authhandlers "github.com/Arcadelis/arcadis-scoring/app/modules/auth/infrastructure/handlers"
	"github.com/nats-io/nats.go"
)

// AuthCalloutSubject is the default NATS subject for auth callout requests.
const AuthCalloutSubject = "$SYS.REQ.USER.AUTH"

// Router manages NATS subscriptions for the auth module.
type Router struct {
	handlers       authhandlers.Handlers
	nc             *nats.Conn
	authCalloutSub *nats.Subscription
}

// NewRouter creates a new auth router.
func NewRouter(handlers authhandlers.Handlers, nc *nats.Conn) *Router {
	return &Router{
		handlers: handlers,
		nc:       nc,
	}
}

// Start subscribes to the auth callout subject. No queue group: each
// instance answers every callout so the server always gets a response.
func (r *Router) Start(authCalloutSubject string) error {
	subject := authCalloutSubject
	if subject == "" {
		subject = AuthCalloutSubject
	}

	sub, err := r.nc.Subscribe(subject, r.handlers.HandleNATSAuthCallout)
	if err != nil {
		return err
	}
	r.authCalloutSub = sub

	return nil
}

// Stop unsubscribes from all NATS subjects.
func (r *Router) Stop() error {
	if r.authCalloutSub != nil {
		return r.authCalloutSub.Unsubscribe()
	}
	return nil
}
