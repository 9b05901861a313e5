// Package repository loads city trip datasets from flat files.
package repository

import (
	"context"

	"github.com/okian/bikeshare/internal/domain/model"
)

// MalformedPolicy decides what happens to a row that fails to parse.
type MalformedPolicy string

// Supported policies.
const (
	// PolicyAbort fails the whole load on the first bad row.
	PolicyAbort MalformedPolicy = "abort"
	// PolicySkip logs the bad row, counts it and keeps going.
	PolicySkip MalformedPolicy = "skip"
)

// Valid reports whether p is a supported policy.
func (p MalformedPolicy) Valid() bool {
	return p == PolicyAbort || p == PolicySkip
}

// Loader provides the trip table of a city.
type Loader interface {
	// Load reads the dataset of city into a fresh table with month, weekday
	// and hour derived on every row.
	// Returns ErrDataSourceNotFound when the file cannot be opened and
	// ErrMalformedRecord when the file cannot be parsed.
	Load(ctx context.Context, city string) (*model.Table, error)
}
