package model

import (
	"fmt"
	"strings"
	"time"
)

// City identifies one of the known datasets.
type City string

// Known cities.
const (
	CityChicago     City = "chicago"
	CityNewYorkCity City = "new york city"
	CityWashington  City = "washington"
)

// Cities returns the known cities in menu order.
func Cities() []City {
	return []City{CityChicago, CityNewYorkCity, CityWashington}
}

func (c City) String() string { return string(c) }

// Title returns the display name, e.g. "New York City".
func (c City) Title() string { return titleCase(string(c)) }

// ParseCity matches s against the known cities, ignoring case and surrounding spaces.
func ParseCity(s string) (City, error) {
	want := normalize(s)
	for _, c := range Cities() {
		if string(c) == want {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCity, s)
}

// allOption is the menu answer that disables a criterion.
const allOption = "all"

// selectableMonths is the month coverage of the datasets.
const selectableMonths = 6

// MonthFilter is a month criterion. AllMonths matches every month.
type MonthFilter int

// AllMonths disables the month criterion.
const AllMonths MonthFilter = 0

// Months returns the selectable months in calendar order.
func Months() []time.Month {
	months := make([]time.Month, 0, selectableMonths)
	for m := time.January; m <= time.Month(selectableMonths); m++ {
		months = append(months, m)
	}
	return months
}

// ParseMonth accepts "all" or a selectable month name, ignoring case.
func ParseMonth(s string) (MonthFilter, error) {
	want := normalize(s)
	if want == allOption {
		return AllMonths, nil
	}
	for _, m := range Months() {
		if strings.ToLower(m.String()) == want {
			return MonthFilter(m), nil
		}
	}
	return AllMonths, fmt.Errorf("%w: %q", ErrUnknownMonth, s)
}

// IsAll reports whether the filter is disabled.
func (f MonthFilter) IsAll() bool { return f == AllMonths }

// Matches reports whether m passes the filter.
func (f MonthFilter) Matches(m time.Month) bool {
	return f.IsAll() || time.Month(f) == m
}

func (f MonthFilter) String() string {
	if f.IsAll() {
		return allOption
	}
	return strings.ToLower(time.Month(f).String())
}

// DayFilter is a weekday criterion. AllDays matches every day.
type DayFilter int

// AllDays disables the day criterion.
const AllDays DayFilter = -1

// Weekdays returns the days in menu order, Sunday first.
func Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days = append(days, d)
	}
	return days
}

// ParseDay accepts "all" or a weekday name, ignoring case.
func ParseDay(s string) (DayFilter, error) {
	want := normalize(s)
	if want == allOption {
		return AllDays, nil
	}
	for _, d := range Weekdays() {
		if strings.ToLower(d.String()) == want {
			return DayFilter(d), nil
		}
	}
	return AllDays, fmt.Errorf("%w: %q", ErrUnknownDay, s)
}

// IsAll reports whether the filter is disabled.
func (f DayFilter) IsAll() bool { return f == AllDays }

// Matches reports whether d passes the filter.
func (f DayFilter) Matches(d time.Weekday) bool {
	return f.IsAll() || time.Weekday(f) == d
}

func (f DayFilter) String() string {
	if f.IsAll() {
		return allOption
	}
	return strings.ToLower(time.Weekday(f).String())
}

// Selection is the triple submitted by the user.
type Selection struct {
	City  City
	Month MonthFilter
	Day   DayFilter
}

// ParseSelection parses the three menu answers.
func ParseSelection(city, month, day string) (Selection, error) {
	c, err := ParseCity(city)
	if err != nil {
		return Selection{}, err
	}
	m, err := ParseMonth(month)
	if err != nil {
		return Selection{}, err
	}
	d, err := ParseDay(day)
	if err != nil {
		return Selection{}, err
	}
	return Selection{City: c, Month: m, Day: d}, nil
}

func (s Selection) String() string {
	return fmt.Sprintf("city=%s month=%s day=%s", s.City, s.Month, s.Day)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
