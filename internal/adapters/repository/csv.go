package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang/snappy"
	"github.com/okian/bikeshare/internal/domain/model"
	"github.com/okian/bikeshare/pkg/logger"
	"github.com/okian/bikeshare/pkg/metrics"
)

// ctxCheckEvery is how many rows are read between context checks.
const ctxCheckEvery = 4096

// utf8BOM is stripped from the first header cell.
const utf8BOM = "\ufeff"

// timestampLayouts are tried in order for Start Time and End Time cells.
var timestampLayouts = []string{ //nolint:gochecknoglobals // read-only lookup table
	model.TimestampLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// CSVLoader reads one comma-separated file per city. Files ending in .sz or
// .snappy are decompressed as a snappy framed stream.
type CSVLoader struct {
	dataDir   string
	cityFiles map[string]string
	policy    MalformedPolicy
	logger    logger.Logger
}

// NewCSVLoader creates a loader resolving files against the working directory
// with the standard city file names.
func NewCSVLoader(opts ...Option) *CSVLoader {
	l := &CSVLoader{
		dataDir: ".",
		cityFiles: map[string]string{
			model.CityChicago.String():     "chicago.csv",
			model.CityNewYorkCity.String(): "new_york_city.csv",
			model.CityWashington.String():  "washington.csv",
		},
		policy: PolicyAbort,
		logger: logger.Get().Named("loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the file the dataset of city is read from.
func (l *CSVLoader) Path(city string) (string, error) {
	c, err := model.ParseCity(city)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDataSourceNotFound, err)
	}
	name, ok := l.cityFiles[c.String()]
	if !ok || name == "" {
		return "", fmt.Errorf("%w: no file configured for %s", ErrDataSourceNotFound, c)
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	return filepath.Join(l.dataDir, name), nil
}

// Load implements Loader.
func (l *CSVLoader) Load(ctx context.Context, city string) (*model.Table, error) {
	start := time.Now()

	c, err := model.ParseCity(city)
	if err != nil {
		metrics.RecordLoadError("unknown", "unknown_city")
		return nil, fmt.Errorf("%w: %w", ErrDataSourceNotFound, err)
	}
	path, err := l.Path(c.String())
	if err != nil {
		metrics.RecordLoadError(c.String(), "not_configured")
		return nil, err
	}

	rc, err := open(path)
	if err != nil {
		metrics.RecordLoadError(c.String(), "not_found")
		return nil, fmt.Errorf("%w: %s: %w", ErrDataSourceNotFound, path, err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			l.logger.Warn(ctx, "failed to close dataset", logger.String("path", path), logger.Error(cerr))
		}
	}()

	table, skipped, err := l.read(ctx, c, rc)
	if err != nil {
		metrics.RecordLoadError(c.String(), errorKind(err))
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	took := time.Since(start)
	metrics.RecordDatasetLoaded(c.String(), table.Len(), skipped, took.Seconds())
	l.logger.Info(ctx, "dataset loaded",
		logger.String("city", c.String()),
		logger.String("path", path),
		logger.Int("rows", table.Len()),
		logger.Int("skipped", skipped),
		logger.Duration("took", took),
	)
	return table, nil
}

func (l *CSVLoader) read(ctx context.Context, city model.City, r io.Reader) (*model.Table, int, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	// Rows may end early; absent trailing cells read as missing.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("%w: empty file", ErrMalformedRecord)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: header: %w", ErrMalformedRecord, err)
	}

	cols, err := newColumns(header)
	if err != nil {
		return nil, 0, err
	}
	schema := model.Schema{Columns: cols.names}

	var (
		rows    []model.Trip
		skipped int
	)
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var (
			trip model.Trip
			line int
		)
		if err == nil {
			line, _ = cr.FieldPos(0)
			trip, err = cols.parse(rec)
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			if l.policy != PolicySkip {
				return nil, 0, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, line, err)
			}
			skipped++
			l.logger.Warn(ctx, "skipping malformed row",
				logger.String("city", city.String()),
				logger.Int("line", line),
				logger.Error(err),
			)
			continue
		}
		rows = append(rows, trip)
	}

	return model.NewTable(city, schema, rows), skipped, nil
}

// columns maps known column names to their position in the header. A
// position of -1 means the column is absent.
type columns struct {
	names []string

	id       int
	start    int
	end      int
	duration int
	from     int
	to       int
	user     int
	gender   int
	year     int
}

func newColumns(header []string) (*columns, error) {
	names := make([]string, len(header))
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		names[i] = h
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	for _, req := range model.RequiredColumns() {
		if _, ok := pos[req]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedRecord, req)
		}
	}

	at := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}
	return &columns{
		names:    names,
		id:       at(model.ColumnID),
		start:    at(model.ColumnStartTime),
		end:      at(model.ColumnEndTime),
		duration: at(model.ColumnTripDuration),
		from:     at(model.ColumnStartStation),
		to:       at(model.ColumnEndStation),
		user:     at(model.ColumnUserType),
		gender:   at(model.ColumnGender),
		year:     at(model.ColumnBirthYear),
	}, nil
}

func (c *columns) parse(rec []string) (model.Trip, error) {
	var t model.Trip
	var err error

	t.ID = cell(rec, c.id)
	if t.StartTime, err = parseTime(cell(rec, c.start)); err != nil {
		return t, fmt.Errorf("start time: %w", err)
	}
	if raw := cell(rec, c.end); raw != "" {
		if t.EndTime, err = parseTime(raw); err != nil {
			return t, fmt.Errorf("end time: %w", err)
		}
	}
	if t.Duration, err = strconv.ParseFloat(cell(rec, c.duration), 64); err != nil {
		return t, fmt.Errorf("trip duration: %w", err)
	}
	t.StartStation = cell(rec, c.from)
	t.EndStation = cell(rec, c.to)
	t.UserType = cell(rec, c.user)
	t.Gender = cell(rec, c.gender)
	if raw := cell(rec, c.year); raw != "" {
		// Birth years are stored as floats in some exports ("1992.0").
		y, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return t, fmt.Errorf("birth year: %w", err)
		}
		t.BirthYear = int(y)
	}

	t.Derive()
	return t, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseTime(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

type readCloser struct {
	io.Reader
	closer io.Closer
}

func (r readCloser) Close() error { return r.closer.Close() }

func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sz", ".snappy":
		return readCloser{Reader: snappy.NewReader(f), closer: f}, nil
	default:
		return f, nil
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedRecord):
		return "malformed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "read"
	}
}
