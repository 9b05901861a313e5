package stats

import (
	"time"

	"github.com/okian/bikeshare/internal/domain/model"
)

// TimeReport holds the most frequent travel times.
type TimeReport struct {
	Month        time.Month
	MonthCount   int
	Weekday      time.Weekday
	WeekdayCount int
	Hour         int
	HourCount    int
}

// TimePatterns returns the modal month, weekday and start hour.
func TimePatterns(table *model.Table) (TimeReport, error) {
	if table.Len() == 0 {
		return TimeReport{}, ErrEmptyDataset
	}

	months := make(map[int]int)
	days := make(map[int]int)
	hours := make(map[int]int)
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		months[int(row.Month)]++
		days[int(row.Weekday)]++
		hours[row.Hour]++
	}

	var r TimeReport
	var m, d int
	m, r.MonthCount = mode(months)
	d, r.WeekdayCount = mode(days)
	r.Hour, r.HourCount = mode(hours)
	r.Month = time.Month(m)
	r.Weekday = time.Weekday(d)
	return r, nil
}
