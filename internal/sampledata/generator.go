package sampledata

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/okian/bikeshare/internal/domain/model"
	"github.com/okian/bikeshare/pkg/logger"
)

// Value ranges of generated trips.
const (
	firstMonth      = time.January
	lastMonth       = time.June
	minTripSeconds  = 60
	maxTripSeconds  = 3 * 60 * 60
	oldestBirthYear = 1940
	youngestAge     = 16
	missingPercent  = 5
	customerPercent = 20
	femalePercent   = 30
)

// stations are shared by every city; names are invented.
var stations = []string{ //nolint:gochecknoglobals // read-only lookup table
	"Canal St & Adams St",
	"Clinton St & Washington Blvd",
	"Lake Shore Dr & Monroe St",
	"Pershing Square North",
	"W 21 St & 6 Ave",
	"Columbus Circle",
	"Union Station",
	"Lincoln Memorial",
	"Dupont Circle",
	"Streeter Dr & Grand Ave",
}

// hourWeights skews start hours toward the commute peaks.
var hourWeights = [24]int{ //nolint:gochecknoglobals // read-only lookup table
	1, 1, 1, 1, 1, 2, 4, 8, 10, 6, 4, 4, 5, 5, 4, 5, 7, 10, 8, 5, 3, 2, 2, 1,
}

// Header returns the dataset header for city.
func Header(city model.City) []string {
	cols := []string{
		model.ColumnID,
		model.ColumnStartTime,
		model.ColumnEndTime,
		model.ColumnTripDuration,
		model.ColumnStartStation,
		model.ColumnEndStation,
		model.ColumnUserType,
	}
	if city != model.CityWashington {
		cols = append(cols, model.ColumnGender, model.ColumnBirthYear)
	}
	return cols
}

// generateRows builds cfg.Trips records concurrently. Row i depends only on
// the seed and i, so the output does not depend on the worker count.
func generateRows(ctx context.Context, cfg Config) ([][]string, error) {
	logger.Get().Info(ctx, "generating sample trips",
		logger.String("city", cfg.City.String()),
		logger.Int("trips", cfg.Trips),
		logger.Int("workers", cfg.Workers))

	header := Header(cfg.City)
	rows := make([][]string, cfg.Trips)

	type rowResult struct {
		index int
		err   error
	}
	resultChan := make(chan rowResult, cfg.Trips)

	workerCount := min(cfg.Workers, cfg.Trips)
	rowsPerWorker := cfg.Trips / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * rowsPerWorker
		end := start + rowsPerWorker
		if worker == workerCount-1 {
			end = cfg.Trips
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- rowResult{index: i, err: ctx.Err()}
					return
				default:
					rows[i] = generateRow(cfg, header, i)
					resultChan <- rowResult{index: i}
				}
			}
		}(start, end)
	}

	for i := 0; i < cfg.Trips; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate row %d: %w", result.index, result.err)
			}
		}
	}

	return rows, nil
}

// generateRow creates the record of row index.
func generateRow(cfg Config, header []string, index int) []string {
	r := rand.New(rand.NewPCG(cfg.Seed, uint64(index))) //nolint:gosec // synthetic data

	month := firstMonth + time.Month(r.IntN(int(lastMonth-firstMonth)+1))
	day := 1 + r.IntN(daysIn(cfg.Year, month))
	start := time.Date(cfg.Year, month, day, pickHour(r), r.IntN(60), r.IntN(60), 0, time.UTC)
	seconds := minTripSeconds + r.IntN(maxTripSeconds-minTripSeconds)
	end := start.Add(time.Duration(seconds) * time.Second)

	from := stations[r.IntN(len(stations))]
	to := stations[r.IntN(len(stations))]

	userType := "Subscriber"
	if r.IntN(100) < customerPercent {
		userType = "Customer"
	}

	rec := make([]string, 0, len(header))
	rec = append(rec,
		strconv.Itoa(index),
		start.Format(model.TimestampLayout),
		end.Format(model.TimestampLayout),
		strconv.Itoa(seconds),
		from,
		to,
		userType,
	)
	if len(header) > len(rec) {
		rec = append(rec, pickGender(r), pickBirthYear(r, cfg.Year))
	}
	return rec
}

func pickHour(r *rand.Rand) int {
	total := 0
	for _, w := range hourWeights {
		total += w
	}
	n := r.IntN(total)
	for h, w := range hourWeights {
		if n < w {
			return h
		}
		n -= w
	}
	return 0
}

func pickGender(r *rand.Rand) string {
	switch n := r.IntN(100); {
	case n < missingPercent:
		return ""
	case n < missingPercent+femalePercent:
		return "Female"
	default:
		return "Male"
	}
}

func pickBirthYear(r *rand.Rand, year int) string {
	if r.IntN(100) < missingPercent {
		return ""
	}
	youngest := year - youngestAge
	return strconv.Itoa(oldestBirthYear + r.IntN(youngest-oldestBirthYear+1))
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
