// Package observability wires logging, metrics, and tracing for the backend.
// Init builds one Observability value that the app threads through every
// module.
package observability

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	eventbusmetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/eventbus"
	handlermetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/handler"
	leaderboardmetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/leaderboard"
	scoremetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/score"
	tournamentmetrics "github.com/Arcadelis/arcadis-scoring/internal/observability/metrics/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/handlerwrapper"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Config controls observability initialization.
type Config struct {
	ServiceName    string
	Environment    string
	Version        string
	MetricsAddress string
}

// Provider holds the process-wide observability primitives.
type Provider struct {
	Logger             *slog.Logger
	TracerProvider     trace.TracerProvider
	PrometheusRegistry *prometheus.Registry

	metricsServer *http.Server
}

// Registry holds the per-module metrics implementations and the shared tracer.
type Registry struct {
	TournamentMetrics  tournamentmetrics.TournamentMetrics
	LeaderboardMetrics leaderboardmetrics.LeaderboardMetrics
	ScoreMetrics       scoremetrics.ScoreMetrics
	EventBusMetrics    eventbusmetrics.EventBusMetrics
	HandlerMetrics     handlerwrapper.ReturningMetrics
	Tracer             trace.Tracer
}

// Observability bundles the provider and registry.
type Observability struct {
	Provider Provider
	Registry Registry
}

// Init builds the observability stack: a JSON slog logger, a prometheus
// registry with an HTTP /metrics listener, and a tracer from the global
// otel provider.
func Init(ctx context.Context, cfg Config) (Observability, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
		slog.String("version", cfg.Version),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tracerProvider := otel.GetTracerProvider()
	tracer := tracerProvider.Tracer(cfg.ServiceName)

	provider := Provider{
		Logger:             logger,
		TracerProvider:     tracerProvider,
		PrometheusRegistry: registry,
	}

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		provider.metricsServer = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := provider.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server stopped", slog.String("error", err.Error()))
			}
		}()
		logger.InfoContext(ctx, "Metrics listener started", slog.String("address", cfg.MetricsAddress))
	}

	return Observability{
		Provider: provider,
		Registry: Registry{
			TournamentMetrics:  tournamentmetrics.New(registry),
			LeaderboardMetrics: leaderboardmetrics.New(registry),
			ScoreMetrics:       scoremetrics.New(registry),
			EventBusMetrics:    eventbusmetrics.New(registry),
			HandlerMetrics:     handlermetrics.New(registry),
			Tracer:             tracer,
		},
	}, nil
}

// Close shuts down the metrics listener.
func (p *Provider) Close(ctx context.Context) error {
	if p.metricsServer == nil {
		return nil
	}
	return p.metricsServer.Shutdown(ctx)
}
