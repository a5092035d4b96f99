// Package leaderboardmetrics records global leaderboard service metrics.
package leaderboardmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LeaderboardMetrics is the leaderboard module's metrics surface.
type LeaderboardMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
}

type prometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationSuccesses *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec
}

// New builds prometheus-backed leaderboard metrics registered on registerer.
func New(registerer prometheus.Registerer) LeaderboardMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "leaderboard",
			Name:      "operation_attempts_total",
			Help:      "Leaderboard service operations attempted.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "leaderboard",
			Name:      "operation_successes_total",
			Help:      "Leaderboard service operations that succeeded.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "leaderboard",
			Name:      "operation_failures_total",
			Help:      "Leaderboard service operations that failed.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arcadis",
			Subsystem: "leaderboard",
			Name:      "operation_duration_seconds",
			Help:      "Leaderboard service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	registerer.MustRegister(
		m.operationAttempts,
		m.operationSuccesses,
		m.operationFailures,
		m.operationDuration,
	)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operationAttempts.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operationSuccesses.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operationFailures.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

type noopMetrics struct{}

// NewNoop returns metrics that record nothing. Used in tests.
func NewNoop() LeaderboardMetrics { return noopMetrics{} }

func (noopMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (noopMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (noopMetrics) RecordOperationFailure(context.Context, string)                 {}
func (noopMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
