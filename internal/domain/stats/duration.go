package stats

import "github.com/okian/bikeshare/internal/domain/model"

const secondsPerHour = 3600.0

// DurationReport holds trip duration totals in hours.
type DurationReport struct {
	Trips      int
	TotalHours float64
	MeanHours  float64
}

// Durations sums trip durations and averages them over the row count.
func Durations(table *model.Table) (DurationReport, error) {
	n := table.Len()
	if n == 0 {
		return DurationReport{}, ErrEmptyDataset
	}

	var total float64
	for i := 0; i < n; i++ {
		total += table.Row(i).Duration
	}

	return DurationReport{
		Trips:      n,
		TotalHours: total / secondsPerHour,
		MeanHours:  total / float64(n) / secondsPerHour,
	}, nil
}
