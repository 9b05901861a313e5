// Package ports declares interfaces implemented by outer adapters.
package ports

import (
	"context"
	"time"
)

// ReportExporter exports per-report metrics to an external observability system.
type ReportExporter interface {
	// ExportReport exports the metrics of one rendered report.
	ExportReport(ctx context.Context, m *ReportMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// ReportMetrics describes one filter submission and the aggregations run on it.
type ReportMetrics struct {
	SessionID string
	City      string
	Month     string
	Day       string

	RowsLoaded   int
	RowsSelected int

	// Aggregations maps aggregator name to the time it took.
	Aggregations map[string]time.Duration
	// Empty lists aggregators that found no rows.
	Empty []string
}
