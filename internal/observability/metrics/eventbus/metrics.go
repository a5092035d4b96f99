// Package eventbusmetrics records event bus publish/consume metrics.
package eventbusmetrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// EventBusMetrics is the event bus metrics surface.
type EventBusMetrics interface {
	RecordMessagePublished(ctx context.Context, topic string)
	RecordPublishFailure(ctx context.Context, topic string)
	RecordMessageReceived(ctx context.Context, topic string)
	RecordStreamCreated(ctx context.Context, stream string)
}

type prometheusMetrics struct {
	published       *prometheus.CounterVec
	publishFailures *prometheus.CounterVec
	received        *prometheus.CounterVec
	streamsCreated  *prometheus.CounterVec
}

// New builds prometheus-backed event bus metrics registered on registerer.
func New(registerer prometheus.Registerer) EventBusMetrics {
	m := &prometheusMetrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "eventbus",
			Name:      "messages_published_total",
			Help:      "Messages published, by topic.",
		}, []string{"topic"}),
		publishFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "eventbus",
			Name:      "publish_failures_total",
			Help:      "Publish attempts that failed, by topic.",
		}, []string{"topic"}),
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "eventbus",
			Name:      "messages_received_total",
			Help:      "Messages received, by topic.",
		}, []string{"topic"}),
		streamsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "eventbus",
			Name:      "streams_created_total",
			Help:      "JetStream streams created at startup.",
		}, []string{"stream"}),
	}
	registerer.MustRegister(m.published, m.publishFailures, m.received, m.streamsCreated)
	return m
}

func (m *prometheusMetrics) RecordMessagePublished(_ context.Context, topic string) {
	m.published.WithLabelValues(topic).Inc()
}

func (m *prometheusMetrics) RecordPublishFailure(_ context.Context, topic string) {
	m.publishFailures.WithLabelValues(topic).Inc()
}

func (m *prometheusMetrics) RecordMessageReceived(_ context.Context, topic string) {
	m.received.WithLabelValues(topic).Inc()
}

func (m *prometheusMetrics) RecordStreamCreated(_ context.Context, stream string) {
	m.streamsCreated.WithLabelValues(stream).Inc()
}

type noopMetrics struct{}

// NewNoop returns metrics that record nothing. Used in tests.
func NewNoop() EventBusMetrics { return noopMetrics{} }

func (noopMetrics) RecordMessagePublished(context.Context, string) {}
func (noopMetrics) RecordPublishFailure(context.Context, string)   {}
func (noopMetrics) RecordMessageReceived(context.Context, string)  {}
func (noopMetrics) RecordStreamCreated(context.Context, string)    {}
