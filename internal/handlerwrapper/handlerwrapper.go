// Package handlerwrapper adapts typed transformation handlers
// (payload in, results out) to watermill's raw message handler contract,
// adding tracing, logging, and handler metrics in one place.
package handlerwrapper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/attr"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Result is one message a handler wants published: destination topic, payload
// to marshal, and optional extra metadata.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// ReturningMetrics records per-handler outcomes. A nil value disables
// handler metrics.
type ReturningMetrics interface {
	RecordHandlerAttempt(ctx context.Context, handlerName string)
	RecordHandlerSuccess(ctx context.Context, handlerName string)
	RecordHandlerFailure(ctx context.Context, handlerName string)
	RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration)
}

// WrapTransformingTyped converts a typed transformation handler into a
// watermill HandlerFunc: the payload is decoded into T, the handler's Results
// become outgoing messages that inherit the incoming correlation ID, and the
// destination topic rides in message metadata for the event bus to use.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	metrics ReturningMetrics,
	handler func(ctx context.Context, payload *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		msgCtx := attr.WithCorrelationID(msg.Context(), middleware.MessageCorrelationID(msg))
		ctx, span := tracer.Start(msgCtx, handlerName,
			trace.WithAttributes(
				attribute.String("handler", handlerName),
				attribute.String("message_id", msg.UUID),
			))
		defer span.End()

		if metrics != nil {
			metrics.RecordHandlerAttempt(ctx, handlerName)
		}
		start := time.Now()
		defer func() {
			if metrics != nil {
				metrics.RecordHandlerDuration(ctx, handlerName, time.Since(start))
			}
		}()

		payload := new(T)
		if err := helpers.UnmarshalPayload(msg, payload); err != nil {
			logger.ErrorContext(ctx, "Failed to unmarshal payload",
				attr.String("handler", handlerName),
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			if metrics != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
			}
			return nil, fmt.Errorf("%s: %w", handlerName, err)
		}

		handlerResults, err := handler(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Handler returned error",
				attr.String("handler", handlerName),
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			if metrics != nil {
				metrics.RecordHandlerFailure(ctx, handlerName)
			}
			return nil, err
		}

		messages := make([]*message.Message, 0, len(handlerResults))
		for _, result := range handlerResults {
			outMsg, err := helpers.CreateResultMessage(msg, result.Payload, result.Topic)
			if err != nil {
				if metrics != nil {
					metrics.RecordHandlerFailure(ctx, handlerName)
				}
				return nil, fmt.Errorf("%s: failed to create result message for %s: %w", handlerName, result.Topic, err)
			}
			for k, v := range result.Metadata {
				outMsg.Metadata.Set(k, v)
			}
			messages = append(messages, outMsg)
		}

		if metrics != nil {
			metrics.RecordHandlerSuccess(ctx, handlerName)
		}
		logger.DebugContext(ctx, "Handler completed",
			attr.String("handler", handlerName),
			attr.CorrelationIDFromMsg(msg),
			attr.Int("messages", len(messages)),
		)
		return messages, nil
	}
}
