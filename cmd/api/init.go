package main

import (
	"context"
	"fmt"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/history"
	"go-chi-calculator/internal/observability"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments. Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

// initTelemetry wires tracing, metrics and OTLP log export. With telemetry
// disabled only the calculator instruments are created, on the global no-op
// meter provider.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context), error) {
	if !cfg.TelemetryEnabled {
		return func(context.Context) {}, calculator.InitMetrics()
	}

	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	metricShutdown, err := initMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	logShutdown, err := observability.InitLogging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	return func(ctx context.Context) {
		_ = logShutdown(ctx)
		_ = metricShutdown(ctx)
		_ = traceShutdown(ctx)
	}, nil
}

// initStore opens the key/value store the history ledger persists into.
func initStore(ctx context.Context, cfg config.Config) (history.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.HistoryStore {
	case config.StoreMemory:
		return history.NewMemoryStore(), noop, nil
	case config.StorePostgres:
		store, err := history.OpenPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return history.NewFileStore(cfg.HistoryDir), noop, nil
	}
}
