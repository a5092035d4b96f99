package scoreintegrationtests

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"

	leaderboarddb "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/repositories"
	scoreservice "github.com/Arcadelis/arcadis-scoring/app/modules/score/application"
	scoredb "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/repositories"
	tournamentservice "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/application"
	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	tournamentutil "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/utils"
	"github.com/Arcadelis/arcadis-scoring/integration_tests/testutils"
	scoremetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/score"
	tournamentmetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
)

// tokenVerifier accepts a submission when the context token equals
// "token:<player>". It mirrors the auth module's subject check without
// needing a NATS auth callout in the loop.
type tokenVerifier struct{}

func (tokenVerifier) VerifySubmitter(_ context.Context, token string, playerID sharedtypes.PlayerID) error {
	if token != TokenFor(playerID) {
		return fmt.Errorf("%w: token does not match player %s", sharedtypes.ErrUnauthorized, playerID)
	}
	return nil
}

// TokenFor returns the bearer token the test verifier accepts for a player.
func TokenFor(playerID sharedtypes.PlayerID) string {
	return "token:" + string(playerID)
}

// AuthorizedCtx returns ctx carrying a token that authorizes playerID.
func AuthorizedCtx(ctx context.Context, playerID sharedtypes.PlayerID) context.Context {
	return utils.WithAuthToken(ctx, TokenFor(playerID))
}

type TestDeps struct {
	Ctx         context.Context
	BunDB       *bun.DB
	Tournaments tournamentdb.TournamentDB
	Boards      leaderboarddb.LeaderboardDB
	Histories   scoredb.HistoryDB
	Service     scoreservice.Service
	Clock       *tournamentutil.FakeClock
}

// SetupTestScoreService builds a score service over the shared containers
// with all three real repositories.
func SetupTestScoreService(t *testing.T) TestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)

	if err := testutils.CleanScoringTables(env.Ctx, env.DB); err != nil {
		t.Fatalf("Failed to clean tables: %v", err)
	}

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	noopTracer := noop.NewTracerProvider().Tracer("test")
	clock := &tournamentutil.FakeClock{}

	tournaments := &tournamentdb.TournamentDBImpl{DB: env.DB}
	boards := &leaderboarddb.LeaderboardDBImpl{DB: env.DB}
	histories := &scoredb.HistoryDBImpl{DB: env.DB}

	service := scoreservice.NewScoreService(
		tournaments,
		boards,
		histories,
		tokenVerifier{},
		testLogger,
		scoremetrics.NewNoop(),
		noopTracer,
		env.DB,
		clock,
	)

	return TestDeps{
		Ctx:         env.Ctx,
		BunDB:       env.DB,
		Tournaments: tournaments,
		Boards:      boards,
		Histories:   histories,
		Service:     service,
		Clock:       clock,
	}
}

// CreateActiveTournament persists a tournament whose window brackets the
// clock's current time.
func (d TestDeps) CreateActiveTournament(t *testing.T, id sharedtypes.TournamentID, gameID sharedtypes.GameID, maxEntries int) {
	t.Helper()

	now := d.Clock.Now()
	start, end := testutils.ActiveWindow(now)

	service := tournamentservice.NewTournamentService(
		d.Tournaments,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		tournamentmetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		d.BunDB,
		d.Clock,
		nil,
	)

	result, err := service.CreateTournament(d.Ctx, tournamentservice.CreateTournamentInput{
		TournamentID: id,
		GameID:       gameID,
		StartTime:    start,
		EndTime:      end,
		MaxEntries:   maxEntries,
	})
	if err != nil || !result.IsSuccess() {
		t.Fatalf("Failed to create tournament %s: result=%+v err=%v", id, result, err)
	}
}
