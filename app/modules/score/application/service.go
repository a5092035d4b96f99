package scoreservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	leaderboarddb "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/repositories"
	scoredb "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/repositories"
	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	tournamentutil "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/utils"
	"github.com/Arcadelis/arcadis-scoring/internal/attr"
	scoremetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/score"
	"github.com/Arcadelis/arcadis-scoring/internal/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ScoreService implements the Service interface. It writes across three
// repositories inside one transaction, which is why it takes the repository
// interfaces directly instead of calling sibling services.
type ScoreService struct {
	tournaments tournamentdb.TournamentDB
	boards      leaderboarddb.LeaderboardDB
	histories   scoredb.HistoryDB
	verifier    SubmitterVerifier
	logger      *slog.Logger
	metrics     scoremetrics.ScoreMetrics
	tracer      trace.Tracer
	db          *bun.DB
	clock       tournamentutil.Clock
}

// NewScoreService creates a new ScoreService.
func NewScoreService(
	tournaments tournamentdb.TournamentDB,
	boards leaderboarddb.LeaderboardDB,
	histories scoredb.HistoryDB,
	verifier SubmitterVerifier,
	logger *slog.Logger,
	metrics scoremetrics.ScoreMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	clock tournamentutil.Clock,
) *ScoreService {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = tournamentutil.RealClock{}
	}
	return &ScoreService{
		tournaments: tournaments,
		boards:      boards,
		histories:   histories,
		verifier:    verifier,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		db:          db,
		clock:       clock,
	}
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ScoreService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	// Start span
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	// Record attempt
	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName)
	}

	// Track duration
	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
		}
	}()

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	// Execute operation
	result, err = op(ctx)

	// Handle infrastructure error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Handle domain failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	// Handle success
	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *ScoreService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}
