package otel

import (
	"context"

	"github.com/okian/bikeshare/internal/ports"
)

// NoOpExporter is a report exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for when export is disabled.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) ExportReport(_ context.Context, _ *ports.ReportMetrics) error {
	return nil
}

func (e *NoOpExporter) Close(_ context.Context) error {
	return nil
}
