package calculator

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	actionsCounter   metric.Int64Counter
	actionsHistogram metric.Float64Histogram
	opsCounter       metric.Int64Counter
	divZeroCounter   metric.Int64Counter
	errorCounter     metric.Int64Counter
	resultGauge      metric.Float64Gauge
)

// Ledger gauges scraped from /metrics.
var (
	historyEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "calculator_history_entries",
		Help: "Number of entries in the calculation history.",
	})
	historyPersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calculator_history_persist_failures_total",
		Help: "Number of failed writes of the calculation history.",
	})
)

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	actionsCounter, err = meter.Int64Counter("calculator.actions.total",
		metric.WithDescription("Total number of keypad actions processed"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return fmt.Errorf("creating actions counter: %w", err)
	}

	actionsHistogram, err = meter.Float64Histogram("calculator.action.duration",
		metric.WithDescription("Duration of keypad action handling in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating actions histogram: %w", err)
	}

	opsCounter, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of completed calculations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	divZeroCounter, err = meter.Int64Counter("calculator.division_by_zero.total",
		metric.WithDescription("Divisions by zero answered with 0"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating division by zero counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last completed calculation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}
