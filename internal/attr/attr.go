// Package attr provides slog attribute constructors shared across modules so
// log fields keep consistent keys and types.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func Int64(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

func Float64(key string, value float64) slog.Attr {
	return slog.Float64(key, value)
}

func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

func Time(key string, value time.Time) slog.Attr {
	return slog.Time(key, value)
}

func Duration(key string, value time.Duration) slog.Attr {
	return slog.Duration(key, value)
}

// Error records an error under the conventional "error" key. A nil error
// logs as an empty string rather than panicking.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func UUIDValue(key string, value uuid.UUID) slog.Attr {
	return slog.String(key, value.String())
}

func TournamentID(id sharedtypes.TournamentID) slog.Attr {
	return slog.String("tournament_id", string(id))
}

func PlayerID(id sharedtypes.PlayerID) slog.Attr {
	return slog.String("player_id", string(id))
}

func GameID(id sharedtypes.GameID) slog.Attr {
	return slog.String("game_id", string(id))
}

func Score(score sharedtypes.Score) slog.Attr {
	return slog.Int64("score", int64(score))
}

// CorrelationIDFromMsg pulls the watermill correlation ID off a message.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String("correlation_id", middleware.MessageCorrelationID(msg))
}

type correlationIDKey struct{}

// WithCorrelationID stores a correlation ID on the context. The handler
// wrapper calls this before invoking a service so log lines across layers
// share one ID.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// ExtractCorrelationID logs the correlation ID carried by the context, or an
// empty string outside a message-handling path.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	correlationID, _ := ctx.Value(correlationIDKey{}).(string)
	return slog.String("correlation_id", correlationID)
}
