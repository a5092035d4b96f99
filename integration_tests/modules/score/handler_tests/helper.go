package scorehandlerintegrationtests

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace/noop"

	leaderboarddb "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/repositories"
	"github.com/Arcadelis/arcadis-scoring/app/modules/score"
	scoredb "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/repositories"
	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	"github.com/Arcadelis/arcadis-scoring/integration_tests/testutils"
	scoreevents "github.com/Arcadelis/arcadis-scoring/internal/events/score"
	"github.com/Arcadelis/arcadis-scoring/internal/observability"
	eventbusmetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/eventbus"
	leaderboardmetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/leaderboard"
	scoremetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/score"
	tournamentmetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/Arcadelis/arcadis-scoring/internal/utils"
)

// tokenVerifier accepts a submission when the metadata token equals
// "token:<player>".
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

type HandlerTestDeps struct {
	*testutils.TestEnvironment
	Module      *score.Module
	Tournaments tournamentdb.TournamentDB
	Helpers     utils.Helpers
}

// SetupScoreHandlerTest wires a real score module into a running watermill
// router over the shared containers.
func SetupScoreHandlerTest(t *testing.T) HandlerTestDeps {
	t.Helper()

	env := testutils.GetOrCreateTestEnv(t)
	if err := testutils.CleanScoringTables(env.Ctx, env.DB); err != nil {
		t.Fatalf("Failed to clean tables: %v", err)
	}
	if err := env.ResetJetStreamState(env.Ctx, scoreevents.StreamName); err != nil {
		t.Fatalf("Failed to reset JetStream state: %v", err)
	}

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	noopTracer := noop.NewTracerProvider().Tracer("test")

	obs := observability.Observability{
		Provider: observability.Provider{
			Logger:             testLogger,
			TracerProvider:     noop.NewTracerProvider(),
			PrometheusRegistry: prometheus.NewRegistry(),
		},
		Registry: observability.Registry{
			TournamentMetrics:  tournamentmetrics.NewNoop(),
			LeaderboardMetrics: leaderboardmetrics.NewNoop(),
			ScoreMetrics:       scoremetrics.NewNoop(),
			EventBusMetrics:    eventbusmetrics.NewNoop(),
			Tracer:             noopTracer,
		},
	}

	router, err := message.NewRouter(
		message.RouterConfig{CloseTimeout: 5 * time.Second},
		watermill.NewSlogLogger(testLogger),
	)
	if err != nil {
		t.Fatalf("Failed to create router: %v", err)
	}

	routerCtx, cancelRouter := context.WithCancel(env.Ctx)
	helpers := utils.NewHelper(testLogger)
	tournaments := &tournamentdb.TournamentDBImpl{DB: env.DB}

	module, err := score.NewScoreModule(
		env.Ctx,
		env.Config,
		obs,
		tournaments,
		&leaderboarddb.LeaderboardDBImpl{DB: env.DB},
		&scoredb.HistoryDBImpl{DB: env.DB},
		tokenVerifier{},
		env.DB,
		env.EventBus,
		router,
		helpers,
		routerCtx,
	)
	if err != nil {
		cancelRouter()
		t.Fatalf("Failed to create score module: %v", err)
	}

	routerDone := make(chan struct{})
	go func() {
		defer close(routerDone)
		if err := router.Run(routerCtx); err != nil {
			testLogger.Error("Router stopped", "error", err)
		}
	}()

	select {
	case <-router.Running():
	case <-time.After(10 * time.Second):
		cancelRouter()
		t.Fatal("Router did not start within 10s")
	}
	// Give JetStream consumers a moment to bind before the first publish.
	time.Sleep(500 * time.Millisecond)

	t.Cleanup(func() {
		cancelRouter()
		if err := module.Close(); err != nil {
			t.Logf("Error closing score module: %v", err)
		}
		select {
		case <-routerDone:
		case <-time.After(10 * time.Second):
			t.Log("Router did not stop within 10s")
		}
	})

	return HandlerTestDeps{
		TestEnvironment: env,
		Module:          module,
		Tournaments:     tournaments,
		Helpers:         helpers,
	}
}

// CreateActiveTournament persists a tournament bracketing the current time.
func (d HandlerTestDeps) CreateActiveTournament(t *testing.T, id sharedtypes.TournamentID, gameID sharedtypes.GameID, maxEntries int) {
	t.Helper()

	start, end := testutils.ActiveWindow(time.Now())
	tournament := &tournamentdb.Tournament{
		ID:         id,
		GameID:     gameID,
		StartTime:  start,
		EndTime:    end,
		MaxEntries: maxEntries,
		Entries:    []sharedtypes.RankedEntry{},
	}
	if err := d.Tournaments.CreateTournament(d.Ctx, nil, tournament); err != nil {
		t.Fatalf("Failed to create tournament %s: %v", id, err)
	}
	if err := d.Tournaments.AppendToIndex(d.Ctx, nil, id); err != nil {
		t.Fatalf("Failed to index tournament %s: %v", id, err)
	}
}

// PublishAndWait publishes a request and waits for the correlated reply on
// one of the given topics. token may be empty for unauthenticated requests.
func (d HandlerTestDeps) PublishAndWait(t *testing.T, requestTopic string, payload any, token string, replyTopics ...string) (*message.Message, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(d.Ctx, 15*time.Second)
	defer cancel()

	type reply struct {
		msg   *message.Message
		topic string
	}
	// Buffered generously: replayed replies from earlier subtests are drained
	// by the correlation loop below.
	replies := make(chan reply, 64)

	for _, topic := range replyTopics {
		topic := topic
		messages, err := d.EventBus.Subscribe(ctx, topic)
		if err != nil {
			t.Fatalf("Failed to subscribe to %s: %v", topic, err)
		}
		go func() {
			for msg := range messages {
				msg.Ack()
				replies <- reply{msg: msg, topic: topic}
			}
		}()
	}

	msg, err := d.Helpers.CreateNewMessage(payload, requestTopic)
	if err != nil {
		t.Fatalf("Failed to create request message: %v", err)
	}
	correlationID := watermill.NewUUID()
	middleware.SetCorrelationID(correlationID, msg)
	if token != "" {
		msg.Metadata.Set(utils.AuthTokenMetadataKey, "Bearer "+token)
	}

	if err := d.EventBus.Publish(requestTopic, msg); err != nil {
		t.Fatalf("Failed to publish request: %v", err)
	}

	for {
		select {
		case r := <-replies:
			if middleware.MessageCorrelationID(r.msg) != correlationID {
				continue
			}
			return r.msg, r.topic
		case <-ctx.Done():
			t.Fatalf("Timed out waiting for reply on %v", replyTopics)
			return nil, ""
		}
	}
}
