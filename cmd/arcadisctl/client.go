package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/eventbus"
	eventbusmetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/eventbus"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/oauth2/clientcredentials"
)

// client carries an authenticated event bus session for one command run.
type client struct {
	bus     eventbus.EventBus
	helpers utils.Helpers
	token   string
	timeout time.Duration
}

// newClient connects to NATS and, when client credentials are configured,
// fetches a bearer token from the auth module.
func newClient(c *cli.Context) (*client, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	bus, err := eventbus.NewEventBus(
		c.Context,
		c.String("nats-url"),
		logger,
		"ctl",
		eventbusmetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("arcadisctl"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	cl := &client{
		bus:     bus,
		helpers: utils.NewHelper(logger),
		timeout: c.Duration("timeout"),
	}

	if clientID := c.String("client-id"); clientID != "" {
		token, err := fetchToken(c.Context, c.String("auth-url"), clientID, c.String("client-secret"), c.String("subject"))
		if err != nil {
			bus.Close()
			return nil, fmt.Errorf("failed to obtain token: %w", err)
		}
		cl.token = token
	}

	return cl, nil
}

func (cl *client) Close() error {
	return cl.bus.Close()
}

// fetchToken runs the OAuth2 client-credentials flow against the auth
// module's token endpoint.
func fetchToken(ctx context.Context, authURL, clientID, clientSecret, subject string) (string, error) {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     strings.TrimSuffix(authURL, "/") + "/api/auth/token",
	}
	if subject != "" {
		cfg.EndpointParams = url.Values{"subject": {subject}}
	}

	token, err := cfg.Token(ctx)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// request publishes payload on requestTopic and waits for the reply carrying
// the same correlation ID on either successTopic or failureTopic. The
// returned topic tells the caller which one answered.
func (cl *client) request(ctx context.Context, requestTopic string, payload any, successTopic, failureTopic string) (*message.Message, string, error) {
	msg, err := cl.helpers.CreateNewMessage(payload, requestTopic)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}

	correlationID := watermill.NewUUID()
	middleware.SetCorrelationID(correlationID, msg)
	if cl.token != "" {
		msg.Metadata.Set(utils.AuthTokenMetadataKey, "Bearer "+cl.token)
	}

	ctx, cancel := context.WithTimeout(ctx, cl.timeout)
	defer cancel()

	successCh, err := cl.bus.Subscribe(ctx, successTopic)
	if err != nil {
		return nil, "", fmt.Errorf("failed to subscribe to %s: %w", successTopic, err)
	}
	failureCh, err := cl.bus.Subscribe(ctx, failureTopic)
	if err != nil {
		return nil, "", fmt.Errorf("failed to subscribe to %s: %w", failureTopic, err)
	}

	if err := cl.bus.Publish(requestTopic, msg); err != nil {
		return nil, "", fmt.Errorf("failed to publish request: %w", err)
	}

	for {
		select {
		case reply, ok := <-successCh:
			if !ok {
				successCh = nil
				continue
			}
			reply.Ack()
			if middleware.MessageCorrelationID(reply) == correlationID {
				return reply, successTopic, nil
			}
		case reply, ok := <-failureCh:
			if !ok {
				failureCh = nil
				continue
			}
			reply.Ack()
			if middleware.MessageCorrelationID(reply) == correlationID {
				return reply, failureTopic, nil
			}
		case <-ctx.Done():
			return nil, "", fmt.Errorf("timed out waiting for a reply on %s", successTopic)
		}
	}
}

// decodeReply unmarshals a reply payload into target.
func (cl *client) decodeReply(reply *message.Message, target any) error {
	return cl.helpers.UnmarshalPayload(reply, target)
}
