package registrykit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Operation outcome labels.
const (
	statusSuccess = "success"
	statusDenied  = "denied"
	statusError   = "error"
)

// OperationMetrics records registry operation counts and durations.
type OperationMetrics interface {
	// RecordOperation counts one finished operation.
	// Status is one of "success", "denied" or "error".
	RecordOperation(ctx context.Context, operation, status string)

	// RecordDuration records how long an operation took, in seconds.
	RecordDuration(ctx context.Context, operation string, duration time.Duration, status string)
}

type operationMetrics struct {
	operationCounter otelmetric.Int64Counter
	durationHisto    otelmetric.Float64Histogram
}

// NewOperationMetrics creates OperationMetrics on the given meter provider.
// Metric names are prefixed with namespace.
func NewOperationMetrics(meterProvider otelmetric.MeterProvider, namespace string) (OperationMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		otelmetric.WithDescription("Total number of registry operations"),
		otelmetric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		otelmetric.WithDescription("Duration of registry operations in seconds"),
		otelmetric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &operationMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
	}, nil
}

func (m *operationMetrics) RecordOperation(ctx context.Context, operation, status string) {
	m.operationCounter.Add(ctx, 1,
		otelmetric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (m *operationMetrics) RecordDuration(ctx context.Context, operation string, duration time.Duration, status string) {
	m.durationHisto.Record(ctx, duration.Seconds(),
		otelmetric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// NoOpOperationMetrics discards everything. It is the Service default.
type NoOpOperationMetrics struct{}

func (NoOpOperationMetrics) RecordOperation(context.Context, string, string) {}

func (NoOpOperationMetrics) RecordDuration(context.Context, string, time.Duration, string) {}

// MetricsProvider owns an OpenTelemetry meter provider exported to a
// private Prometheus registry.
type MetricsProvider struct {
	meterProvider *metric.MeterProvider
	exporter      *promexporter.Exporter
	registry      *prometheus.Registry
}

// NewMetricsProvider creates a meter provider backed by a Prometheus exporter.
func NewMetricsProvider() (*MetricsProvider, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithReader(exporter),
	)

	return &MetricsProvider{
		meterProvider: meterProvider,
		exporter:      exporter,
		registry:      registry,
	}, nil
}

// Handler serves the collected metrics in Prometheus exposition format.
func (p *MetricsProvider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// MeterProvider returns the OpenTelemetry meter provider.
func (p *MetricsProvider) MeterProvider() *metric.MeterProvider {
	return p.meterProvider
}

// Shutdown flushes and stops the meter provider.
func (p *MetricsProvider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
