// Package handlermetrics implements the handler wrapper's metrics contract
// with prometheus.
package handlermetrics

import (
	"context"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
	"github.com/prometheus/client_golang/prometheus"
)

type prometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// New builds prometheus-backed handler metrics registered on registerer.
func New(registerer prometheus.Registerer) handlerwrapper.ReturningMetrics {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "handler",
			Name:      "attempts_total",
			Help:      "Handler invocations, by handler.",
		}, []string{"handler"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "handler",
			Name:      "successes_total",
			Help:      "Handler invocations that completed, by handler.",
		}, []string{"handler"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "handler",
			Name:      "failures_total",
			Help:      "Handler invocations that errored, by handler.",
		}, []string{"handler"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arcadis",
			Subsystem: "handler",
			Name:      "duration_seconds",
			Help:      "Handler latency, by handler.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
	}
	registerer.MustRegister(m.attempts, m.successes, m.failures, m.duration)
	return m
}

func (m *prometheusMetrics) RecordHandlerAttempt(_ context.Context, handlerName string) {
	m.attempts.WithLabelValues(handlerName).Inc()
}

func (m *prometheusMetrics) RecordHandlerSuccess(_ context.Context, handlerName string) {
	m.successes.WithLabelValues(handlerName).Inc()
}

func (m *prometheusMetrics) RecordHandlerFailure(_ context.Context, handlerName string) {
	m.failures.WithLabelValues(handlerName).Inc()
}

func (m *prometheusMetrics) RecordHandlerDuration(_ context.Context, handlerName string, duration time.Duration) {
	m.duration.WithLabelValues(handlerName).Observe(duration.Seconds())
}
