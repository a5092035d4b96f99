// Package utils holds message plumbing shared by every module: payload
// marshaling, result message construction, and router middleware that lifts
// transport metadata into the request context.
package utils

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// TopicMetadataKey tells the event bus where to publish a produced message
// when the router's publish topic is left empty.
const TopicMetadataKey = "topic"

// Helpers abstracts message construction and payload decoding.
type Helpers interface {
	CreateResultMessage(originalMsg *message.Message, payload any, topic string) (*message.Message, error)
	CreateNewMessage(payload any, topic string) (*message.Message, error)
	UnmarshalPayload(msg *message.Message, target any) error
}

type helper struct {
	logger *slog.Logger
}

// NewHelper creates the default Helpers implementation.
func NewHelper(logger *slog.Logger) Helpers {
	return &helper{logger: logger}
}

// CreateResultMessage builds an outgoing message carrying payload, preserving
// the correlation ID of the message it answers and stamping the destination
// topic into metadata.
func (h *helper) CreateResultMessage(originalMsg *message.Message, payload any, topic string) (*message.Message, error) {
	msg, err := h.CreateNewMessage(payload, topic)
	if err != nil {
		return nil, err
	}
	if originalMsg != nil {
		if correlationID := middleware.MessageCorrelationID(originalMsg); correlationID != "" {
			middleware.SetCorrelationID(correlationID, msg)
		}
		if sub := originalMsg.Metadata.Get(AuthSubjectMetadataKey); sub != "" {
			msg.Metadata.Set(AuthSubjectMetadataKey, sub)
		}
		msg.SetContext(originalMsg.Context())
	}
	return msg, nil
}

// CreateNewMessage builds a fresh message with no causation chain.
func (h *helper) CreateNewMessage(payload any, topic string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(TopicMetadataKey, topic)
	return msg, nil
}

// UnmarshalPayload decodes a message payload into target.
func (h *helper) UnmarshalPayload(msg *message.Message, target any) error {
	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return nil
}
