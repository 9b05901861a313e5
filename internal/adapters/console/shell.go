// Package console implements the interactive question-and-answer shell.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	service "github.com/okian/bikeshare/internal/app"
	"github.com/okian/bikeshare/internal/domain/model"
	"github.com/okian/bikeshare/pkg/logger"
	"github.com/okian/bikeshare/pkg/metrics"
)

// State is a step of the shell state machine.
type State int

// Shell states, in the order a session walks them.
const (
	StateCollectFilters State = iota
	StateLoad
	StateFilter
	StateReport
	StateOfferRawData
	StateOfferRestart
	StateTerminate
)

func (s State) String() string {
	switch s {
	case StateCollectFilters:
		return "collect_filters"
	case StateLoad:
		return "load"
	case StateFilter:
		return "filter"
	case StateReport:
		return "report"
	case StateOfferRawData:
		return "offer_raw_data"
	case StateOfferRestart:
		return "offer_restart"
	case StateTerminate:
		return "terminate"
	}
	return "unknown"
}

const defaultPageSize = 5

const greeting = "Hello! Let's explore some US bikeshare data!"

// Reporter is the pipeline the shell drives.
type Reporter interface {
	Load(ctx context.Context, city model.City) (*model.Table, error)
	Filter(ctx context.Context, sel model.Selection, table *model.Table) *model.Table
	Report(ctx context.Context, sel model.Selection, table *model.Table) service.Report
	Export(ctx context.Context, r service.Report, loaded int)
}

// Shell runs sessions of filter prompts, reports and raw data pages.
type Shell struct {
	reporter Reporter
	prompt   *prompter
	out      io.Writer
	pageSize int
	logger   logger.Logger

	// session state, reset on every restart
	sel      model.Selection
	loaded   *model.Table
	selected *model.Table
}

// Option applies a configuration option to the Shell.
type Option func(*Shell)

// WithPageSize sets how many raw rows are shown per page.
func WithPageSize(n int) Option {
	return func(s *Shell) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithLogger sets a custom logger for the shell.
func WithLogger(l logger.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a shell reading answers from in and writing to out.
func New(reporter Reporter, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		reporter: reporter,
		out:      out,
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("shell")
	}
	s.prompt = newPrompter(in, out, s.logger)
	return s
}

// Run drives the state machine until the user declines to restart or input
// ends. End of input is a normal exit.
func (s *Shell) Run(ctx context.Context) error {
	state := StateCollectFilters
	for state != StateTerminate {
		next, err := s.step(ctx, state)
		if errors.Is(err, io.EOF) {
			s.logger.Info(ctx, "input closed", logger.String("state", state.String()))
			return nil
		}
		if err != nil {
			return err
		}
		s.logger.Debug(ctx, "transition", logger.String("from", state.String()), logger.String("to", next.String()))
		state = next
	}
	return nil
}

func (s *Shell) step(ctx context.Context, state State) (State, error) {
	switch state {
	case StateCollectFilters:
		return s.collectFilters(ctx)
	case StateLoad:
		return s.load(ctx)
	case StateFilter:
		return s.filter(ctx)
	case StateReport:
		return s.report(ctx)
	case StateOfferRawData:
		return s.offerRawData(ctx)
	case StateOfferRestart:
		return s.offerRestart(ctx)
	}
	return StateTerminate, nil
}

func (s *Shell) collectFilters(ctx context.Context) (State, error) {
	s.sel, s.loaded, s.selected = model.Selection{}, nil, nil
	fmt.Fprintln(s.out, greeting)

	_, err := s.prompt.choose(ctx, "city",
		question("city", cityOptions()),
		hint("city"),
		func(a string) error {
			c, err := model.ParseCity(a)
			if err != nil {
				return ErrInvalidInput
			}
			s.sel.City = c
			return nil
		})
	if err != nil {
		return StateTerminate, err
	}
	s.confirmChoice(s.sel.City.Title())

	_, err = s.prompt.choose(ctx, "month",
		question("month", monthOptions()),
		hint("month"),
		func(a string) error {
			m, err := model.ParseMonth(a)
			if err != nil {
				return ErrInvalidInput
			}
			s.sel.Month = m
			return nil
		})
	if err != nil {
		return StateTerminate, err
	}
	s.confirmChoice(titleWord(s.sel.Month.String()))

	_, err = s.prompt.choose(ctx, "day",
		question("day", dayOptions()),
		hint("day"),
		func(a string) error {
			d, err := model.ParseDay(a)
			if err != nil {
				return ErrInvalidInput
			}
			s.sel.Day = d
			return nil
		})
	if err != nil {
		return StateTerminate, err
	}
	s.confirmChoice(titleWord(s.sel.Day.String()))

	fmt.Fprintln(s.out, separator)
	metrics.RecordSessionStarted()
	s.logger.Info(ctx, "filters collected", logger.String("selection", s.sel.String()))
	return StateLoad, nil
}

func (s *Shell) load(ctx context.Context) (State, error) {
	table, err := s.reporter.Load(ctx, s.sel.City)
	if err != nil {
		if ctx.Err() != nil {
			return StateTerminate, err
		}
		fmt.Fprintf(s.out, "\nCould not load data for %s: %v\n", s.sel.City.Title(), err)
		return StateOfferRestart, nil
	}
	s.loaded = table
	return StateFilter, nil
}

func (s *Shell) filter(ctx context.Context) (State, error) {
	s.selected = s.reporter.Filter(ctx, s.sel, s.loaded)
	return StateReport, nil
}

func (s *Shell) report(ctx context.Context) (State, error) {
	r := s.reporter.Report(ctx, s.sel, s.selected)
	printReport(s.out, r)
	s.reporter.Export(ctx, r, s.loaded.Len())
	if s.selected.Len() == 0 {
		return StateOfferRestart, nil
	}
	return StateOfferRawData, nil
}

func (s *Shell) offerRawData(ctx context.Context) (State, error) {
	q := fmt.Sprintf("\nWould you like to see %d lines of raw data? Enter yes or no.\n", s.pageSize)
	more := fmt.Sprintf("\nWould you like to see %d more lines of raw data? Enter yes or no.\n", s.pageSize)

	p := newPager(s.selected, s.pageSize)
	for {
		yes, err := s.prompt.confirm(q)
		if err != nil {
			return StateTerminate, err
		}
		if !yes {
			return StateOfferRestart, nil
		}

		df, offset, ok := p.page()
		if !ok {
			break
		}
		if err := printFrame(s.out, df, offset); err != nil {
			return StateTerminate, err
		}
		metrics.RecordRawPage()
		if p.done() {
			break
		}
		q = more
	}

	fmt.Fprintln(s.out, "\nNo more raw data to display.")
	s.logger.Debug(ctx, "raw data exhausted", logger.Int("rows", s.selected.Len()))
	return StateOfferRestart, nil
}

func (s *Shell) offerRestart(_ context.Context) (State, error) {
	yes, err := s.prompt.confirm("\nWould you like to restart? Enter yes or no.\n")
	if err != nil {
		return StateTerminate, err
	}
	if yes {
		return StateCollectFilters, nil
	}
	return StateTerminate, nil
}

func (s *Shell) confirmChoice(what string) {
	fmt.Fprintf(s.out, "\nWe'll get the data for %s.\n\n", what)
}

func question(what string, options []string) string {
	return fmt.Sprintf("Which %s would you like to see the data? (%s): ", what, strings.Join(options, ", "))
}

func hint(what string) string {
	return fmt.Sprintf("Invalid input: please use the name of the %s shown in the brackets.", what)
}

func cityOptions() []string {
	out := make([]string, 0, len(model.Cities()))
	for _, c := range model.Cities() {
		out = append(out, c.Title())
	}
	return out
}

func monthOptions() []string {
	out := []string{"All"}
	for _, m := range model.Months() {
		out = append(out, m.String())
	}
	return out
}

func dayOptions() []string {
	out := []string{"All"}
	for _, d := range model.Weekdays() {
		out = append(out, d.String())
	}
	return out
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
