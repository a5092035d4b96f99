package tournamentqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Arcadelis/arcadis-scoring/internal/attr"
	"github.com/Arcadelis/arcadis-scoring/internal/eventbus"
	tournamentevents "github.com/Arcadelis/arcadis-scoring/internal/events/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
	"github.com/riverqueue/river"
)

// TournamentStartWorker publishes the tournament.started notification when a
// scheduled start job comes due.
type TournamentStartWorker struct {
	river.WorkerDefaults[TournamentStartJob]
	logger   *slog.Logger
	eventBus eventbus.EventBus
	helpers  utils.Helpers
}

// NewTournamentStartWorker creates a worker for tournament start jobs.
func NewTournamentStartWorker(logger *slog.Logger, eventBus eventbus.EventBus, helpers utils.Helpers) *TournamentStartWorker {
	return &TournamentStartWorker{
		logger:   logger,
		eventBus: eventBus,
		helpers:  helpers,
	}
}

// Work publishes the lifecycle event for the job's tournament.
func (w *TournamentStartWorker) Work(ctx context.Context, job *river.Job[TournamentStartJob]) error {
	w.logger.InfoContext(ctx, "Tournament start job firing",
		attr.TournamentID(job.Args.TournamentID),
		attr.Int64("job_id", job.ID),
	)

	payload := tournamentevents.TournamentLifecyclePayloadV1{
		TournamentID: job.Args.TournamentID,
		GameID:       job.Args.GameID,
	}

	msg, err := w.helpers.CreateNewMessage(payload, tournamentevents.TournamentStartedV1)
	if err != nil {
		return fmt.Errorf("failed to create tournament started message: %w", err)
	}
	msg.SetContext(ctx)

	if err := w.eventBus.Publish(tournamentevents.TournamentStartedV1, msg); err != nil {
		return fmt.Errorf("failed to publish tournament started event: %w", err)
	}
	return nil
}

// TournamentEndWorker publishes the tournament.ended notification when a
// scheduled end job comes due.
type TournamentEndWorker struct {
	river.WorkerDefaults[TournamentEndJob]
	logger   *slog.Logger
	eventBus eventbus.EventBus
	helpers  utils.Helpers
}

// NewTournamentEndWorker creates a worker for tournament end jobs.
func NewTournamentEndWorker(logger *slog.Logger, eventBus eventbus.EventBus, helpers utils.Helpers) *TournamentEndWorker {
	return &TournamentEndWorker{
		logger:   logger,
		eventBus: eventBus,
		helpers:  helpers,
	}
}

// Work publishes the lifecycle event for the job's tournament.
func (w *TournamentEndWorker) Work(ctx context.Context, job *river.Job[TournamentEndJob]) error {
	w.logger.InfoContext(ctx, "Tournament end job firing",
		attr.TournamentID(job.Args.TournamentID),
		attr.Int64("job_id", job.ID),
	)

	payload := tournamentevents.TournamentLifecyclePayloadV1{
		TournamentID: job.Args.TournamentID,
		GameID:       job.Args.GameID,
	}

	msg, err := w.helpers.CreateNewMessage(payload, tournamentevents.TournamentEndedV1)
	if err != nil {
		return fmt.Errorf("failed to create tournament ended message: %w", err)
	}
	msg.SetContext(ctx)

	if err := w.eventBus.Publish(tournamentevents.TournamentEndedV1, msg); err != nil {
		return fmt.Errorf("failed to publish tournament ended event: %w", err)
	}
	return nil
}
