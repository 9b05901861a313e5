// Package otel exports report metrics to an OpenTelemetry collector.
package otel

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/okian/bikeshare/internal/ports"
)

const (
	serviceName    = "bikeshare"
	serviceVersion = "1.0.0"
)

// ErrDisabled is returned by NewExporter when export is not configured.
var ErrDisabled = errors.New("OTEL exporter is disabled or endpoint not configured")

// Exporter exports report metrics to an OTEL Collector.
type Exporter struct {
	provider     *sdkmetric.MeterProvider
	reportsTotal metric.Int64Counter
	rowsHist     metric.Int64Histogram
	aggHist      metric.Float64Histogram
	emptyTotal   metric.Int64Counter
}

// New creates an exporter, or a no-op one when export is disabled.
func New(ctx context.Context, cfg Config) (ports.ReportExporter, error) {
	if !cfg.Enabled {
		return NewNoOpExporter(), nil
	}
	e, err := NewExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, ErrDisabled
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return newExporter(provider)
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	reportsTotal, err := meter.Int64Counter(
		"bikeshare_reports_total",
		metric.WithDescription("Total number of reports rendered"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reports counter: %w", err)
	}

	rowsHist, err := meter.Int64Histogram(
		"bikeshare_report_rows",
		metric.WithDescription("Rows left after filtering"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rows histogram: %w", err)
	}

	aggHist, err := meter.Float64Histogram(
		"bikeshare_aggregation_duration_seconds",
		metric.WithDescription("Time spent in each aggregator"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating aggregation histogram: %w", err)
	}

	emptyTotal, err := meter.Int64Counter(
		"bikeshare_empty_aggregations_total",
		metric.WithDescription("Aggregations that found no rows"),
		metric.WithUnit("{aggregation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating empty counter: %w", err)
	}

	return &Exporter{
		provider:     provider,
		reportsTotal: reportsTotal,
		rowsHist:     rowsHist,
		aggHist:      aggHist,
		emptyTotal:   emptyTotal,
	}, nil
}

// ExportReport exports the metrics of one rendered report.
func (e *Exporter) ExportReport(ctx context.Context, m *ports.ReportMetrics) error {
	attrs := []attribute.KeyValue{
		attribute.String("city", m.City),
		attribute.String("month", m.Month),
		attribute.String("day", m.Day),
	}
	opt := metric.WithAttributes(attrs...)

	e.reportsTotal.Add(ctx, 1, opt)
	e.rowsHist.Record(ctx, int64(m.RowsSelected), opt)

	for name, took := range m.Aggregations {
		e.aggHist.Record(ctx, took.Seconds(),
			metric.WithAttributes(append(attrs, attribute.String("aggregator", name))...))
	}
	for _, name := range m.Empty {
		e.emptyTotal.Add(ctx, 1,
			metric.WithAttributes(append(attrs, attribute.String("aggregator", name))...))
	}

	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
