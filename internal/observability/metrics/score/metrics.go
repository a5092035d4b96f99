// Package scoremetrics records score submission service metrics.
package scoremetrics

import (
	"context"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/prometheus/client_golang/prometheus"
)

// ScoreMetrics is the score module's metrics surface. The submission
// orchestration is the only writer of tournament entries and board documents,
// so the rerank, capacity and trim series live here.
type ScoreMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordSubmissionOutcome(ctx context.Context, code string)
	RecordHistoryEviction(ctx context.Context)
	RecordCapacityRejection(ctx context.Context, tournamentID sharedtypes.TournamentID)
	RecordRerankDuration(ctx context.Context, duration time.Duration)
	RecordBoardTrim(ctx context.Context, count int)
}

type prometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationSuccesses *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec
	submissionOutcomes *prometheus.CounterVec
	historyEvictions   prometheus.Counter
	capacityRejections prometheus.Counter
	rerankDuration     prometheus.Histogram
	boardTrims         prometheus.Counter
}

// New builds prometheus-backed score metrics registered on registerer.
func New(registerer prometheus.Registerer) ScoreMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "score",
			Name:      "operation_attempts_total",
			Help:      "Score service operations attempted.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "score",
			Name:      "operation_successes_total",
			Help:      "Score service operations that succeeded.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "score",
			Name:      "operation_failures_total",
			Help:      "Score service operations that failed.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arcadis",
			Subsystem: "score",
			Name:      "operation_duration_seconds",
			Help:      "Score service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		submissionOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "score",
			Name:      "submission_outcomes_total",
			Help:      "Score submissions by outcome code.",
		}, []string{"code"}),
		historyEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "score",
			Name:      "history_evictions_total",
			Help:      "History records evicted at the per-player cap.",
		}),
		capacityRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "score",
			Name:      "capacity_rejections_total",
			Help:      "Submissions rejected because the tournament was full.",
		}),
		rerankDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "arcadis",
			Subsystem: "score",
			Name:      "rerank_duration_seconds",
			Help:      "Time spent reordering entry documents per submission.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 10, 6),
		}),
		boardTrims: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "arcadis",
			Subsystem: "score",
			Name:      "board_trims_total",
			Help:      "Global leaderboard entries dropped at the board cap.",
		}),
	}
	registerer.MustRegister(
		m.operationAttempts,
		m.operationSuccesses,
		m.operationFailures,
		m.operationDuration,
		m.submissionOutcomes,
		m.historyEvictions,
		m.capacityRejections,
		m.rerankDuration,
		m.boardTrims,
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

func (m *prometheusMetrics) RecordSubmissionOutcome(_ context.Context, code string) {
	m.submissionOutcomes.WithLabelValues(code).Inc()
}

func (m *prometheusMetrics) RecordHistoryEviction(_ context.Context) {
	m.historyEvictions.Inc()
}

func (m *prometheusMetrics) RecordCapacityRejection(_ context.Context, _ sharedtypes.TournamentID) {
	m.capacityRejections.Inc()
}

func (m *prometheusMetrics) RecordRerankDuration(_ context.Context, duration time.Duration) {
	m.rerankDuration.Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordBoardTrim(_ context.Context, count int) {
	m.boardTrims.Add(float64(count))
}

type noopMetrics struct{}

// NewNoop returns metrics that record nothing. Used in tests.
func NewNoop() ScoreMetrics { return noopMetrics{} }

func (noopMetrics) RecordOperationAttempt(context.Context, string)                    {}
func (noopMetrics) RecordOperationSuccess(context.Context, string)                    {}
func (noopMetrics) RecordOperationFailure(context.Context, string)                    {}
func (noopMetrics) RecordOperationDuration(context.Context, string, time.Duration)    {}
func (noopMetrics) RecordSubmissionOutcome(context.Context, string)                   {}
func (noopMetrics) RecordHistoryEviction(context.Context)                             {}
func (noopMetrics) RecordCapacityRejection(context.Context, sharedtypes.TournamentID) {}
func (noopMetrics) RecordRerankDuration(context.Context, time.Duration)               {}
func (noopMetrics) RecordBoardTrim(context.Context, int)                              {}
