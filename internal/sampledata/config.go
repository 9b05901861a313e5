// Package sampledata generates synthetic city datasets in the layout the
// loader reads, for demos and load tests.
package sampledata

import (
	"fmt"

	"github.com/okian/bikeshare/internal/domain/model"
)

// Config holds the parameters of one generated dataset.
type Config struct {
	City     model.City // decides the header; Washington has no demographics
	Trips    int        // number of rows
	Seed     uint64     // same seed, same rows
	Year     int        // calendar year of every Start Time
	Workers  int        // concurrent row builders
	Compress bool       // write a snappy framed stream
}

// Stats summarizes a generation run.
type Stats struct {
	Rows  int
	Bytes int64
	Path  string
}

const (
	defaultYear    = 2017
	defaultWorkers = 4
)

func (c *Config) normalize() error {
	if c.Trips <= 0 {
		return fmt.Errorf("%w: trips must be positive, got %d", ErrInvalidConfig, c.Trips)
	}
	if _, err := model.ParseCity(c.City.String()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Year == 0 {
		c.Year = defaultYear
	}
	if c.Year < oldestBirthYear+youngestAge {
		return fmt.Errorf("%w: year must be at least %d, got %d", ErrInvalidConfig, oldestBirthYear+youngestAge, c.Year)
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	return nil
}
