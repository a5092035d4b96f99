// Package tournamentmetrics records tournament service metrics.
package tournamentmetrics

import (
	"context"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/prometheus/client_golang/prometheus"
)

// TournamentMetrics is the tournament module's metrics surface.
type TournamentMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordTournamentCreated(ctx context.Context, gameID sharedtypes.GameID)
	RecordLifecycleTransition(ctx context.Context, phase string)
}

type prometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationSuccesses *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec
	tournamentsCreated *prometheus.CounterVec
	lifecycleEvents    *prometheus.CounterVec
}

// New builds prometheus-backed tournament metrics registered on registerer.
func New(registerer prometheus.Registerer) TournamentMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "tournament",
			Name:      "operation_attempts_total",
			Help:      "Tournament service operations attempted.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "tournament",
			Name:      "operation_successes_total",
			Help:      "Tournament service operations that succeeded.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "tournament",
			Name:      "operation_failures_total",
			Help:      "Tournament service operations that failed.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arcadis",
			Subsystem: "tournament",
			Name:      "operation_duration_seconds",
			Help:      "Tournament service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		tournamentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "tournament",
			Name:      "created_total",
			Help:      "Tournaments created, by game.",
		}, []string{"game_id"}),
		lifecycleEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "tournament",
			Name:      "lifecycle_transitions_total",
			Help:      "Lifecycle notifications published, by phase.",
		}, []string{"phase"}),
	}
	registerer.MustRegister(
		m.operationAttempts,
		m.operationSuccesses,
		m.operationFailures,
		m.operationDuration,
		m.tournamentsCreated,
		m.lifecycleEvents,
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

func (m *prometheusMetrics) RecordTournamentCreated(_ context.Context, gameID sharedtypes.GameID) {
	m.tournamentsCreated.WithLabelValues(string(gameID)).Inc()
}

func (m *prometheusMetrics) RecordLifecycleTransition(_ context.Context, phase string) {
	m.lifecycleEvents.WithLabelValues(phase).Inc()
}

type noopMetrics struct{}

// NewNoop returns metrics that record nothing. Used in tests.
func NewNoop() TournamentMetrics { return noopMetrics{} }

func (noopMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (noopMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (noopMetrics) RecordOperationFailure(context.Context, string)                 {}
func (noopMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (noopMetrics) RecordTournamentCreated(context.Context, sharedtypes.GameID)    {}
func (noopMetrics) RecordLifecycleTransition(context.Context, string)              {}
