// Package metrics provides Prometheus metrics for the bikeshare explorer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the bikeshare explorer.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Dataset Metrics - what was loaded and selected
	datasetsLoaded *prometheus.CounterVec
	rowsLoaded     *prometheus.CounterVec
	rowsSkipped    *prometheus.CounterVec
	rowsSelected   prometheus.Histogram
	loadLatency    *prometheus.HistogramVec
	loadErrors     *prometheus.CounterVec

	// Aggregation Metrics
	aggregationLatency *prometheus.HistogramVec
	emptyDatasets      *prometheus.CounterVec

	// Shell Metrics
	sessionsStarted prometheus.Counter
	reportsRendered prometheus.Counter
	invalidInputs   *prometheus.CounterVec
	rawPagesShown   prometheus.Counter

	// HTTP Metrics - the metrics listener itself
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "bikeshare",
		subsystem:        "explorer",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(base string) string {
	if m.metricPrefix == "" {
		return base
	}
	return m.metricPrefix + "_" + base
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.datasetsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("datasets_loaded_total"),
		Help:        "Total number of city datasets loaded",
		ConstLabels: labels,
	}, []string{"city"})

	m.rowsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("rows_loaded_total"),
		Help:        "Total number of trip rows read from datasets",
		ConstLabels: labels,
	}, []string{"city"})

	m.rowsSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("rows_skipped_total"),
		Help:        "Total number of malformed trip rows skipped",
		ConstLabels: labels,
	}, []string{"city"})

	m.rowsSelected = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("rows_selected"),
		Help:        "Number of rows left after applying month/day filters",
		Buckets:     prometheus.ExponentialBuckets(1, 10, 7),
		ConstLabels: labels,
	})

	m.loadLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("load_latency_seconds"),
		Help:        "Time spent loading a city dataset",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"city"})

	m.loadErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("load_errors_total"),
		Help:        "Dataset load failures by kind",
		ConstLabels: labels,
	}, []string{"city", "kind"})

	m.aggregationLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("aggregation_latency_seconds"),
		Help:        "Time spent in each aggregator",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"aggregator"})

	m.emptyDatasets = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("empty_dataset_total"),
		Help:        "Aggregations that found no rows for the selection",
		ConstLabels: labels,
	}, []string{"aggregator"})

	m.sessionsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("sessions_started_total"),
		Help:        "Number of filter selections submitted",
		ConstLabels: labels,
	})

	m.reportsRendered = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("reports_rendered_total"),
		Help:        "Number of full reports printed",
		ConstLabels: labels,
	})

	m.invalidInputs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("invalid_input_total"),
		Help:        "Answers rejected by a prompt",
		ConstLabels: labels,
	}, []string{"prompt"})

	m.rawPagesShown = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("raw_pages_shown_total"),
		Help:        "Number of raw data pages printed",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Requests served by the metrics listener",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status"})

	m.httpDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_seconds"),
		Help:        "Latency of requests served by the metrics listener",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method"})
}

// RecordDatasetLoaded records a successful load of rows for city.
func (m *Manager) RecordDatasetLoaded(city string, rows, skipped int, seconds float64) {
	if !m.enabled {
		return
	}
	m.datasetsLoaded.WithLabelValues(city).Inc()
	m.rowsLoaded.WithLabelValues(city).Add(float64(rows))
	if skipped > 0 {
		m.rowsSkipped.WithLabelValues(city).Add(float64(skipped))
	}
	m.loadLatency.WithLabelValues(city).Observe(seconds)
}

// RecordLoadError records a failed dataset load.
func (m *Manager) RecordLoadError(city, kind string) {
	if !m.enabled {
		return
	}
	m.loadErrors.WithLabelValues(city, kind).Inc()
}

// RecordRowsSelected records how many rows survived filtering.
func (m *Manager) RecordRowsSelected(rows int) {
	if !m.enabled {
		return
	}
	m.rowsSelected.Observe(float64(rows))
}

// RecordAggregation records the time one aggregator took.
func (m *Manager) RecordAggregation(aggregator string, seconds float64) {
	if !m.enabled {
		return
	}
	m.aggregationLatency.WithLabelValues(aggregator).Observe(seconds)
}

// RecordEmptyDataset records an aggregator running on an empty selection.
func (m *Manager) RecordEmptyDataset(aggregator string) {
	if !m.enabled {
		return
	}
	m.emptyDatasets.WithLabelValues(aggregator).Inc()
}

// RecordSessionStarted records a submitted filter selection.
func (m *Manager) RecordSessionStarted() {
	if !m.enabled {
		return
	}
	m.sessionsStarted.Inc()
}

// RecordReportRendered records a fully printed report.
func (m *Manager) RecordReportRendered() {
	if !m.enabled {
		return
	}
	m.reportsRendered.Inc()
}

// RecordInvalidInput records a rejected answer for prompt.
func (m *Manager) RecordInvalidInput(prompt string) {
	if !m.enabled {
		return
	}
	m.invalidInputs.WithLabelValues(prompt).Inc()
}

// RecordRawPage records a printed raw data page.
func (m *Manager) RecordRawPage() {
	if !m.enabled {
		return
	}
	m.rawPagesShown.Inc()
}

// RecordHTTPRequest records one request served by the metrics listener.
func (m *Manager) RecordHTTPRequest(endpoint, method, status string, seconds float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	m.httpDuration.WithLabelValues(endpoint, method).Observe(seconds)
}

// Package-level helpers delegating to the global manager.

// RecordDatasetLoaded records a successful load on the global manager.
func RecordDatasetLoaded(city string, rows, skipped int, seconds float64) {
	globalManager.RecordDatasetLoaded(city, rows, skipped, seconds)
}

// RecordLoadError records a failed load on the global manager.
func RecordLoadError(city, kind string) {
	globalManager.RecordLoadError(city, kind)
}

// RecordRowsSelected records selected rows on the global manager.
func RecordRowsSelected(rows int) {
	globalManager.RecordRowsSelected(rows)
}

// RecordAggregation records aggregator latency on the global manager.
func RecordAggregation(aggregator string, seconds float64) {
	globalManager.RecordAggregation(aggregator, seconds)
}

// RecordEmptyDataset records an empty selection on the global manager.
func RecordEmptyDataset(aggregator string) {
	globalManager.RecordEmptyDataset(aggregator)
}

// RecordSessionStarted records a selection on the global manager.
func RecordSessionStarted() {
	globalManager.RecordSessionStarted()
}

// RecordReportRendered records a report on the global manager.
func RecordReportRendered() {
	globalManager.RecordReportRendered()
}

// RecordInvalidInput records a rejected answer on the global manager.
func RecordInvalidInput(prompt string) {
	globalManager.RecordInvalidInput(prompt)
}

// RecordRawPage records a raw page on the global manager.
func RecordRawPage() {
	globalManager.RecordRawPage()
}

// RecordHTTPRequest records a listener request on the global manager.
func RecordHTTPRequest(endpoint, method, status string, seconds float64) {
	globalManager.RecordHTTPRequest(endpoint, method, status, seconds)
}

// Global returns the global manager.
func Global() *Manager {
	return globalManager
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
