package tournamentqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/attr"
	"github.com/Arcadelis/arcadis-scoring/internal/eventbus"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"
)

// Metrics is the subset of tournament metrics the queue service records.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordLifecycleTransition(ctx context.Context, phase string)
}

// QueueService schedules tournament lifecycle jobs.
type QueueService interface {
	// ScheduleTournamentStart schedules the tournament.started notification.
	ScheduleTournamentStart(ctx context.Context, tournamentID sharedtypes.TournamentID, gameID sharedtypes.GameID, startTime time.Time) error
	// ScheduleTournamentEnd schedules the tournament.ended notification.
	ScheduleTournamentEnd(ctx context.Context, tournamentID sharedtypes.TournamentID, gameID sharedtypes.GameID, endTime time.Time) error
	// CancelTournamentJobs cancels all scheduled jobs for a tournament.
	CancelTournamentJobs(ctx context.Context, tournamentID sharedtypes.TournamentID) error
	// GetScheduledJobs returns scheduled jobs for a tournament (for debugging).
	GetScheduledJobs(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]JobInfo, error)
	// HealthCheck verifies the queue service is healthy.
	HealthCheck(ctx context.Context) error
	// Start starts the queue service.
	Start(ctx context.Context) error
	// Stop stops the queue service.
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service schedules lifecycle jobs for the tournament module using River.
type Service struct {
	client   *river.Client[pgx.Tx]
	logger   *slog.Logger
	db       *bun.DB
	metrics  Metrics
	eventBus eventbus.EventBus
	helpers  utils.Helpers
}

// NewService creates a River-backed queue service for tournament lifecycle
// scheduling. River needs its own pgx pool; bunDB is only used for job
// introspection queries.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, metrics Metrics, eventBus eventbus.EventBus, helpers utils.Helpers) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_tournament_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_queue")

	ctxLogger.Info("Initializing tournament queue service")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		ctxLogger.Error("Failed to parse DSN for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_queue")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		ctxLogger.Error("Failed to create pgx pool for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_queue")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_queue")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewTournamentStartWorker(ctxLogger, eventBus, helpers))
	river.AddWorker(workers, NewTournamentEndWorker(ctxLogger, eventBus, helpers))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 50},
			"tournament":       {MaxWorkers: 25},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_queue")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	service := &Service{
		client:   riverClient,
		logger:   ctxLogger,
		db:       bunDB,
		metrics:  metrics,
		eventBus: eventBus,
		helpers:  helpers,
	}

	metrics.RecordOperationSuccess(ctx, "initialize_queue")
	metrics.RecordOperationDuration(ctx, "initialize_queue", time.Since(start))

	ctxLogger.Info("Tournament queue service initialized successfully")
	return service, nil
}

// Start starts the River queue service.
func (s *Service) Start(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "start_queue")
	s.logger.Info("Starting tournament queue service")

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_queue")
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_queue")
	s.logger.Info("Tournament queue service started successfully")
	return nil
}

// Stop stops the River queue service.
func (s *Service) Stop(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "stop_queue")
	s.logger.Info("Stopping tournament queue service")

	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_queue")
		return fmt.Errorf("failed to stop River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "stop_queue")
	s.logger.Info("Tournament queue service stopped successfully")
	return nil
}

// ScheduleTournamentStart schedules the started notification for startTime.
// A start time already in the past is skipped rather than rejected so that
// tournaments created mid-window still register cleanly.
func (s *Service) ScheduleTournamentStart(ctx context.Context, tournamentID sharedtypes.TournamentID, gameID sharedtypes.GameID, startTime time.Time) error {
	opStart := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_tournament_start")

	ctxLogger := s.logger.With(
		attr.TournamentID(tournamentID),
		attr.Time("start_time", startTime),
		attr.String("operation", "schedule_tournament_start"),
	)

	now := time.Now()
	if !startTime.After(now) {
		ctxLogger.Info("Start time already passed, skipping start notification",
			attr.Time("current_time", now))
		s.metrics.RecordOperationSuccess(ctx, "schedule_tournament_start")
		return nil
	}

	job := TournamentStartJob{
		TournamentID: tournamentID,
		GameID:       gameID,
	}

	jobResult, err := s.client.Insert(ctx, job, &river.InsertOpts{
		Queue:       "tournament",
		ScheduledAt: startTime,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true, // one start job per tournament
		},
	})
	if err != nil {
		ctxLogger.Error("Failed to schedule tournament start job", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "schedule_tournament_start")
		return fmt.Errorf("failed to schedule tournament start job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_tournament_start")
	s.metrics.RecordOperationDuration(ctx, "schedule_tournament_start", time.Since(opStart))
	s.metrics.RecordLifecycleTransition(ctx, "start_scheduled")

	ctxLogger.Info("Tournament start job scheduled",
		attr.Duration("delay", startTime.Sub(now)),
		attr.Int64("job_id", jobResult.Job.ID))
	return nil
}

// ScheduleTournamentEnd schedules the ended notification for just past
// endTime. The window is inclusive of endTime itself, so the job fires one
// second after it.
func (s *Service) ScheduleTournamentEnd(ctx context.Context, tournamentID sharedtypes.TournamentID, gameID sharedtypes.GameID, endTime time.Time) error {
	opStart := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_tournament_end")

	ctxLogger := s.logger.With(
		attr.TournamentID(tournamentID),
		attr.Time("end_time", endTime),
		attr.String("operation", "schedule_tournament_end"),
	)

	fireAt := endTime.Add(time.Second)

	now := time.Now()
	if !fireAt.After(now) {
		ctxLogger.Info("End time already passed, skipping end notification",
			attr.Time("current_time", now))
		s.metrics.RecordOperationSuccess(ctx, "schedule_tournament_end")
		return nil
	}

	job := TournamentEndJob{
		TournamentID: tournamentID,
		GameID:       gameID,
	}

	jobResult, err := s.client.Insert(ctx, job, &river.InsertOpts{
		Queue:       "tournament",
		ScheduledAt: fireAt,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true, // one end job per tournament
		},
	})
	if err != nil {
		ctxLogger.Error("Failed to schedule tournament end job", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "schedule_tournament_end")
		return fmt.Errorf("failed to schedule tournament end job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_tournament_end")
	s.metrics.RecordOperationDuration(ctx, "schedule_tournament_end", time.Since(opStart))
	s.metrics.RecordLifecycleTransition(ctx, "end_scheduled")

	ctxLogger.Info("Tournament end job scheduled",
		attr.Duration("delay", fireAt.Sub(now)),
		attr.Int64("job_id", jobResult.Job.ID))
	return nil
}

// CancelTournamentJobs cancels all scheduled jobs for a tournament.
func (s *Service) CancelTournamentJobs(ctx context.Context, tournamentID sharedtypes.TournamentID) error {
	opStart := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "cancel_tournament_jobs")

	ctxLogger := s.logger.With(
		attr.TournamentID(tournamentID),
		attr.String("operation", "cancel_tournament_jobs"),
	)

	type RiverJobRow struct {
		ID          int64          `bun:"id"`
		Kind        string         `bun:"kind"`
		State       string         `bun:"state"`
		Args        map[string]any `bun:"args"`
		ScheduledAt *time.Time     `bun:"scheduled_at"`
	}

	var jobs []RiverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "args", "scheduled_at").
		Where("kind IN (?, ?)", "tournament_start", "tournament_end").
		Where("state IN (?, ?)", "available", "scheduled").
		Where("args->>'tournament_id' = ?", string(tournamentID)).
		Scan(ctx, &jobs)
	if err != nil {
		ctxLogger.Error("Failed to query jobs for cancellation", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "cancel_tournament_jobs")
		return fmt.Errorf("failed to query jobs for cancellation: %w", err)
	}

	if len(jobs) == 0 {
		ctxLogger.Info("No jobs found to cancel")
		s.metrics.RecordOperationSuccess(ctx, "cancel_tournament_jobs")
		s.metrics.RecordOperationDuration(ctx, "cancel_tournament_jobs", time.Since(opStart))
		return nil
	}

	cancelledCount := 0
	for _, job := range jobs {
		_, err := s.client.JobCancel(ctx, job.ID)
		if err != nil {
			ctxLogger.Warn("Failed to cancel job",
				attr.Int64("job_id", job.ID),
				attr.String("job_kind", job.Kind),
				attr.Error(err))
			continue
		}
		cancelledCount++
	}

	if cancelledCount == len(jobs) {
		s.metrics.RecordOperationSuccess(ctx, "cancel_tournament_jobs")
	} else {
		s.metrics.RecordOperationFailure(ctx, "cancel_tournament_jobs")
	}
	s.metrics.RecordOperationDuration(ctx, "cancel_tournament_jobs", time.Since(opStart))

	ctxLogger.Info("Jobs cancellation completed",
		attr.Int("total_found", len(jobs)),
		attr.Int("cancelled_count", cancelledCount))

	return nil
}

// GetScheduledJobs returns scheduled jobs for a tournament (for debugging).
func (s *Service) GetScheduledJobs(ctx context.Context, tournamentID sharedtypes.TournamentID) ([]JobInfo, error) {
	opStart := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "get_scheduled_jobs")

	ctxLogger := s.logger.With(
		attr.TournamentID(tournamentID),
		attr.String("operation", "get_scheduled_jobs"),
	)

	type RiverJobRow struct {
		ID          int64          `bun:"id"`
		Kind        string         `bun:"kind"`
		State       string         `bun:"state"`
		Args        map[string]any `bun:"args"`
		ScheduledAt *time.Time     `bun:"scheduled_at"`
		CreatedAt   time.Time      `bun:"created_at"`
		Attempt     int16          `bun:"attempt"`
		MaxAttempts int16          `bun:"max_attempts"`
	}

	var jobs []RiverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "args", "scheduled_at", "created_at", "attempt", "max_attempts").
		Where("kind IN (?, ?)", "tournament_start", "tournament_end").
		Where("args->>'tournament_id' = ?", string(tournamentID)).
		Order("scheduled_at ASC NULLS LAST", "created_at ASC").
		Scan(ctx, &jobs)
	if err != nil {
		ctxLogger.Error("Failed to query scheduled jobs", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "get_scheduled_jobs")
		return nil, fmt.Errorf("failed to query scheduled jobs: %w", err)
	}

	result := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}

		result[i] = JobInfo{
			ID:           job.ID,
			Kind:         job.Kind,
			TournamentID: string(tournamentID),
			State:        job.State,
			ScheduledAt:  scheduledAt,
			CreatedAt:    job.CreatedAt.Format(time.RFC3339),
			Attempt:      int(job.Attempt),
			MaxAttempts:  int(job.MaxAttempts),
		}
	}

	s.metrics.RecordOperationSuccess(ctx, "get_scheduled_jobs")
	s.metrics.RecordOperationDuration(ctx, "get_scheduled_jobs", time.Since(opStart))

	ctxLogger.Info("Retrieved scheduled jobs", attr.Int("job_count", len(result)))
	return result, nil
}

// HealthCheck verifies the queue service is healthy.
func (s *Service) HealthCheck(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "queue_health_check")

	if s.client == nil {
		s.metrics.RecordOperationFailure(ctx, "queue_health_check")
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		s.logger.Error("Queue service health check failed", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "queue_health_check")
		return fmt.Errorf("queue service health check failed: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "queue_health_check")
	s.logger.Debug("Queue service health check passed", attr.Int("total_jobs", count))
	return nil
}

// GetClient returns the underlying River client for advanced operations.
func (s *Service) GetClient() *river.Client[pgx.Tx] {
	return s.client
}
