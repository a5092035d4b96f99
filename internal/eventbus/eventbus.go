// Package eventbus wraps Watermill's NATS JetStream publisher/subscriber
// behind one EventBus value that module routers use for both sides.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Arcadelis/arcadis-scoring/internal/attr"
	eventbusmetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/eventbus"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel/trace"
)

// EventBus is the messaging surface modules depend on. It satisfies
// watermill's Publisher and Subscriber so a router can use it for both sides.
type EventBus interface {
	message.Publisher
	message.Subscriber
	CreateStream(ctx context.Context, streamName string) error
	GetJetStream() jetstream.JetStream
}

type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	js         jetstream.JetStream
	natsConn   *nc.Conn
	logger     *slog.Logger
	metrics    eventbusmetrics.EventBusMetrics
	tracer     trace.Tracer
	appType    string

	streamMutex    sync.Mutex
	createdStreams map[string]bool
}

// NewEventBus connects to NATS, initializes JetStream, and builds the
// Watermill publisher and subscriber. appType names the consuming
// application ("backend", "ctl") and prefixes durable consumer names.
func NewEventBus(
	ctx context.Context,
	natsURL string,
	logger *slog.Logger,
	appType string,
	metrics eventbusmetrics.EventBusMetrics,
	tracer trace.Tracer,
) (EventBus, error) {
	natsConn, err := nc.Connect(natsURL,
		nc.Name("arcadis-scoring-"+appType),
		nc.RetryOnFailedConnect(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:       natsURL,
			Marshaler: marshaler,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: marshaler,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		publisher.Close()
		natsConn.Close()
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Event bus connected",
		attr.String("nats_url", natsURL),
		attr.String("app_type", appType),
	)

	return &eventBus{
		publisher:      publisher,
		subscriber:     subscriber,
		js:             js,
		natsConn:       natsConn,
		logger:         logger,
		metrics:        metrics,
		tracer:         tracer,
		appType:        appType,
		createdStreams: make(map[string]bool),
	}, nil
}

// Publish sends messages to topic. When topic is empty the destination is
// read from each message's topic metadata; module routers rely on this so
// one handler can answer on success and failure topics alike.
func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		destination := topic
		if destination == "" {
			destination = msg.Metadata.Get(utils.TopicMetadataKey)
		}
		if destination == "" {
			return fmt.Errorf("message %s has no destination topic", msg.UUID)
		}
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}

		if err := eb.publisher.Publish(destination, msg); err != nil {
			eb.metrics.RecordPublishFailure(msg.Context(), destination)
			return fmt.Errorf("failed to publish to %s: %w", destination, err)
		}
		eb.metrics.RecordMessagePublished(msg.Context(), destination)
		eb.logger.Debug("Published message",
			attr.String("topic", destination),
			attr.String("message_id", msg.UUID),
		)
	}
	return nil
}

// Subscribe subscribes to topic, counting received messages.
func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	messages, err := eb.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	out := make(chan *message.Message)
	go func() {
		defer close(out)
		for msg := range messages {
			eb.metrics.RecordMessageReceived(msg.Context(), topic)
			out <- msg
		}
	}()
	return out, nil
}

// CreateStream ensures a JetStream stream named streamName covering
// "<streamName>.>" exists. Safe to call repeatedly.
func (eb *eventBus) CreateStream(ctx context.Context, streamName string) error {
	eb.streamMutex.Lock()
	defer eb.streamMutex.Unlock()

	if eb.createdStreams[streamName] {
		return nil
	}

	_, err := eb.js.Stream(ctx, streamName)
	switch {
	case err == nil:
		eb.createdStreams[streamName] = true
		return nil
	case err == jetstream.ErrStreamNotFound:
		_, err = eb.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{streamName + ".>"},
		})
		if err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}
		eb.metrics.RecordStreamCreated(ctx, streamName)
		eb.logger.InfoContext(ctx, "Created JetStream stream", attr.String("stream", streamName))
		eb.createdStreams[streamName] = true
		return nil
	default:
		return fmt.Errorf("failed to check stream %s: %w", streamName, err)
	}
}

// GetJetStream exposes the underlying JetStream handle.
func (eb *eventBus) GetJetStream() jetstream.JetStream {
	return eb.js
}

// Close shuts down the publisher, subscriber, and NATS connection.
func (eb *eventBus) Close() error {
	var firstErr error
	if err := eb.publisher.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := eb.subscriber.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	eb.natsConn.Close()
	return firstErr
}
