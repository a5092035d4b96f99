package tournamentintegrationtests

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	tournamentservice "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/application"
	tournamentqueue "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/queue"
	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	tournamentutil "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/utils"
	"github.com/Arcadelis/arcadis-scoring/integration_tests/testutils"
	tournamentmetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
)

type TestDeps struct {
	Ctx     context.Context
	DB      tournamentdb.TournamentDB
	BunDB   *bun.DB
	Queue   tournamentqueue.QueueService
	Service tournamentservice.Service
	Clock   *tournamentutil.FakeClock
}

// SetupTestTournamentService builds a tournament service over the shared
// containers, with a real River-backed queue service.
func SetupTestTournamentService(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)

	if err := testutils.CleanScoringTables(env.Ctx, env.DB); err != nil {
		t.Fatalf("Failed to clean tables: %v", err)
	}

	realDB := &tournamentdb.TournamentDBImpl{DB: env.DB}
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	noopMetrics := tournamentmetrics.NewNoop()
	noopTracer := noop.NewTracerProvider().Tracer("test")

	queueService, err := tournamentqueue.NewService(
		env.Ctx,
		env.DB,
		testLogger,
		env.Config.Postgres.DSN,
		noopMetrics,
		env.EventBus,
		utils.NewHelper(testLogger),
	)
	if err != nil {
		t.Fatalf("Failed to create queue service: %v", err)
	}
	t.Cleanup(func() {
		queueService.Stop(context.Background())
	})

	clock := &tournamentutil.FakeClock{}

	service := tournamentservice.NewTournamentService(
		realDB,
		testLogger,
		noopMetrics,
		noopTracer,
		env.DB,
		clock,
		queueService,
	)

	return TestDeps{
		Ctx:     env.Ctx,
		DB:      realDB,
		BunDB:   env.DB,
		Queue:   queueService,
		Service: service,
		Clock:   clock,
	}
}
