package model

// Source column names.
const (
	ColumnID           = ""
	ColumnStartTime    = "Start Time"
	ColumnEndTime      = "End Time"
	ColumnTripDuration = "Trip Duration"
	ColumnStartStation = "Start Station"
	ColumnEndStation   = "End Station"
	ColumnUserType     = "User Type"
	ColumnGender       = "Gender"
	ColumnBirthYear    = "Birth Year"
)

// Derived column names.
const (
	ColumnMonth     = "month"
	ColumnDayOfWeek = "day_of_week"
	ColumnHour      = "hour"
)

// RequiredColumns must be present in every dataset header.
func RequiredColumns() []string {
	return []string{
		ColumnStartTime,
		ColumnTripDuration,
		ColumnStartStation,
		ColumnEndStation,
		ColumnUserType,
	}
}

// Schema is the header of a loaded dataset.
type Schema struct {
	Columns []string
}

// Has reports whether the header contains column.
func (s Schema) Has(column string) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// HasGender reports whether the dataset has a Gender column.
func (s Schema) HasGender() bool { return s.Has(ColumnGender) }

// HasBirthYear reports whether the dataset has a Birth Year column.
func (s Schema) HasBirthYear() bool { return s.Has(ColumnBirthYear) }

// DisplayColumns returns the source columns followed by the derived ones.
func (s Schema) DisplayColumns() []string {
	cols := make([]string, 0, len(s.Columns)+3)
	cols = append(cols, s.Columns...)
	return append(cols, ColumnMonth, ColumnDayOfWeek, ColumnHour)
}

// Table is the working set of trips for one city. A Table is never modified
// after construction; Select returns a new one.
type Table struct {
	city   City
	schema Schema
	rows   []Trip
}

// NewTable builds a table owning rows.
func NewTable(city City, schema Schema, rows []Trip) *Table {
	return &Table{city: city, schema: schema, rows: rows}
}

// City returns the city the rows belong to.
func (t *Table) City() City { return t.city }

// Schema returns the dataset header.
func (t *Table) Schema() Schema { return t.schema }

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) Trip { return t.rows[i] }

// Slice returns copies of rows [from, to), clamped to the table bounds.
func (t *Table) Slice(from, to int) []Trip {
	if from < 0 {
		from = 0
	}
	if to > t.Len() {
		to = t.Len()
	}
	if from >= to {
		return nil
	}
	out := make([]Trip, to-from)
	copy(out, t.rows[from:to])
	return out
}

// Select returns a new table holding the rows at indices, in order.
func (t *Table) Select(indices []int) *Table {
	rows := make([]Trip, len(indices))
	for i, idx := range indices {
		rows[i] = t.rows[idx]
	}
	return NewTable(t.city, t.schema, rows)
}
