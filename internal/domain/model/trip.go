// Package model contains domain models passed between layers.
package model

import (
	"strconv"
	"time"
)

// TimestampLayout is the layout of Start Time and End Time cells.
const TimestampLayout = "2006-01-02 15:04:05"

// Trip is one bike rental event. Month, Weekday and Hour are derived from
// StartTime once, when the trip is loaded.
type Trip struct {
	ID           string    // leading unnamed index column, empty when absent
	StartTime    time.Time // rental start
	EndTime      time.Time // rental end, zero when the column is absent
	Duration     float64   // seconds
	StartStation string
	EndStation   string
	UserType     string // Subscriber, Customer, ...
	Gender       string // empty when missing
	BirthYear    int    // 0 when missing

	Month   time.Month
	Weekday time.Weekday
	Hour    int
}

// Derive fills the calendar fields from StartTime.
func (t *Trip) Derive() {
	t.Month = t.StartTime.Month()
	t.Weekday = t.StartTime.Weekday()
	t.Hour = t.StartTime.Hour()
}

// HasBirthYear reports whether the row carries a birth year.
func (t Trip) HasBirthYear() bool { return t.BirthYear > 0 }

// Value renders the cell for column the way it appears in the source file.
// Derived columns are rendered as month number, weekday name and hour.
func (t Trip) Value(column string) string {
	switch column {
	case ColumnID:
		return t.ID
	case ColumnStartTime:
		return formatTime(t.StartTime)
	case ColumnEndTime:
		return formatTime(t.EndTime)
	case ColumnTripDuration:
		return strconv.FormatFloat(t.Duration, 'f', -1, 64)
	case ColumnStartStation:
		return t.StartStation
	case ColumnEndStation:
		return t.EndStation
	case ColumnUserType:
		return t.UserType
	case ColumnGender:
		return t.Gender
	case ColumnBirthYear:
		if !t.HasBirthYear() {
			return ""
		}
		return strconv.Itoa(t.BirthYear)
	case ColumnMonth:
		return strconv.Itoa(int(t.Month))
	case ColumnDayOfWeek:
		return t.Weekday.String()
	case ColumnHour:
		return strconv.Itoa(t.Hour)
	}
	return ""
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(TimestampLayout)
}
