// Package filter narrows a trip table by month and day of week.
package filter

import (
	"fmt"

	"github.com/okian/bikeshare/internal/domain/model"
)

// Apply parses the month and day answers and returns the matching rows.
// "all" disables a criterion. Names are matched case-insensitively.
func Apply(table *model.Table, month, day string) (*model.Table, error) {
	m, err := model.ParseMonth(month)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCriterion, err)
	}
	d, err := model.ParseDay(day)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCriterion, err)
	}
	return ByCalendar(table, m, d), nil
}

// ApplySelection filters table by the month and day of sel.
func ApplySelection(table *model.Table, sel model.Selection) *model.Table {
	return ByCalendar(table, sel.Month, sel.Day)
}

// ByCalendar returns a new table with the rows passing both criteria, in
// their original order. The input table is not modified.
func ByCalendar(table *model.Table, month model.MonthFilter, day model.DayFilter) *model.Table {
	n := table.Len()
	if month.IsAll() && day.IsAll() {
		return table.Select(all(n))
	}

	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		row := table.Row(i)
		if month.Matches(row.Month) && day.Matches(row.Weekday) {
			keep = append(keep, i)
		}
	}
	return table.Select(keep)
}

func all(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
