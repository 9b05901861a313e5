// Package service runs the load, filter and aggregate pipeline behind the
// interactive shell and the report command.
package service

import (
	"context"
	"errors"
	"time"

	repository "github.com/okian/bikeshare/internal/adapters/repository"
	"github.com/okian/bikeshare/internal/domain/filter"
	"github.com/okian/bikeshare/internal/domain/model"
	"github.com/okian/bikeshare/internal/domain/stats"
	"github.com/okian/bikeshare/internal/ports"
	"github.com/okian/bikeshare/pkg/logger"
	"github.com/okian/bikeshare/pkg/metrics"
)

// Aggregator names, in report order.
const (
	AggregatorTime     = "time"
	AggregatorStations = "stations"
	AggregatorDuration = "duration"
	AggregatorUsers    = "users"
)

// Section is the outcome of one aggregator. Exactly one of the report
// fields is set when Err is nil.
type Section struct {
	Name string
	Took time.Duration
	Err  error

	Time     *stats.TimeReport
	Stations *stats.StationReport
	Duration *stats.DurationReport
	Users    *stats.UserReport
}

// Empty reports whether the aggregator found no rows.
func (s Section) Empty() bool { return errors.Is(s.Err, stats.ErrEmptyDataset) }

// Report is the full set of statistics for one selection.
type Report struct {
	Selection model.Selection
	Rows      int
	Sections  []Section
}

// Service implements the report pipeline.
type Service struct {
	loader    repository.Loader
	exporter  ports.ReportExporter
	sessionID string

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLoader sets the dataset loader.
func WithLoader(l repository.Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// WithExporter sets where per-report metrics are exported.
func WithExporter(e ports.ReportExporter) Option {
	return func(s *Service) {
		if e != nil {
			s.exporter = e
		}
	}
}

// WithSessionID tags exported metrics and log lines with id.
func WithSessionID(id string) Option {
	return func(s *Service) {
		s.sessionID = id
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service. Without WithLoader it reads the standard city
// files from the working directory.
func New(opts ...Option) *Service {
	s := &Service{}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.loader == nil {
		s.loader = repository.NewCSVLoader()
	}
	if s.sessionID != "" {
		s.logger = s.logger.With(logger.String("session_id", s.sessionID))
	}

	return s
}

// Load reads the dataset of city.
func (s *Service) Load(ctx context.Context, city model.City) (*model.Table, error) {
	table, err := s.loader.Load(ctx, city.String())
	if err != nil {
		s.logger.Warn(ctx, "dataset load failed",
			logger.String("city", city.String()),
			logger.Error(err),
		)
		return nil, err
	}
	return table, nil
}

// Filter keeps the rows of table matching the month and day of sel.
func (s *Service) Filter(ctx context.Context, sel model.Selection, table *model.Table) *model.Table {
	selected := filter.ApplySelection(table, sel)
	metrics.RecordRowsSelected(selected.Len())
	s.logger.Debug(ctx, "selection applied",
		logger.String("selection", sel.String()),
		logger.Int("loaded", table.Len()),
		logger.Int("selected", selected.Len()),
	)
	return selected
}

// Select loads the city of sel and keeps the rows matching its month and day.
// It returns the loaded row count alongside the filtered table.
func (s *Service) Select(ctx context.Context, sel model.Selection) (*model.Table, int, error) {
	table, err := s.Load(ctx, sel.City)
	if err != nil {
		return nil, 0, err
	}
	return s.Filter(ctx, sel, table), table.Len(), nil
}

// Report runs the four aggregators over table in order. Aggregator errors are
// kept on their section; the report itself never fails.
func (s *Service) Report(ctx context.Context, sel model.Selection, table *model.Table) Report {
	r := Report{Selection: sel, Rows: table.Len()}
	for _, run := range []func(*model.Table) Section{timeSection, stationSection, durationSection, userSection} {
		sec := timed(run, table)
		metrics.RecordAggregation(sec.Name, sec.Took.Seconds())
		if sec.Empty() {
			metrics.RecordEmptyDataset(sec.Name)
		}
		r.Sections = append(r.Sections, sec)
	}
	s.logger.Debug(ctx, "report computed",
		logger.String("selection", sel.String()),
		logger.Int("rows", r.Rows),
	)
	return r
}

// Export sends the metrics of a rendered report to the exporter, if any.
func (s *Service) Export(ctx context.Context, r Report, loaded int) {
	metrics.RecordReportRendered()
	if s.exporter == nil {
		return
	}

	m := &ports.ReportMetrics{
		SessionID:    s.sessionID,
		City:         r.Selection.City.String(),
		Month:        r.Selection.Month.String(),
		Day:          r.Selection.Day.String(),
		RowsLoaded:   loaded,
		RowsSelected: r.Rows,
		Aggregations: make(map[string]time.Duration, len(r.Sections)),
	}
	for _, sec := range r.Sections {
		m.Aggregations[sec.Name] = sec.Took
		if sec.Empty() {
			m.Empty = append(m.Empty, sec.Name)
		}
	}
	if err := s.exporter.ExportReport(ctx, m); err != nil {
		s.logger.Warn(ctx, "failed to export report metrics", logger.Error(err))
	}
}

// Run selects the rows of sel and reports on them.
func (s *Service) Run(ctx context.Context, sel model.Selection) (Report, *model.Table, error) {
	table, loaded, err := s.Select(ctx, sel)
	if err != nil {
		return Report{}, nil, err
	}
	r := s.Report(ctx, sel, table)
	s.Export(ctx, r, loaded)
	return r, table, nil
}

func timed(run func(*model.Table) Section, table *model.Table) Section {
	start := time.Now()
	sec := run(table)
	sec.Took = time.Since(start)
	return sec
}

func timeSection(t *model.Table) Section {
	r, err := stats.TimePatterns(t)
	sec := Section{Name: AggregatorTime, Err: err}
	if err == nil {
		sec.Time = &r
	}
	return sec
}

func stationSection(t *model.Table) Section {
	r, err := stats.Stations(t)
	sec := Section{Name: AggregatorStations, Err: err}
	if err == nil {
		sec.Stations = &r
	}
	return sec
}

func durationSection(t *model.Table) Section {
	r, err := stats.Durations(t)
	sec := Section{Name: AggregatorDuration, Err: err}
	if err == nil {
		sec.Duration = &r
	}
	return sec
}

func userSection(t *model.Table) Section {
	r, err := stats.Users(t)
	sec := Section{Name: AggregatorUsers, Err: err}
	if err == nil {
		sec.Users = &r
	}
	return sec
}
