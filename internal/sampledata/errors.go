package sampledata

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidConfig = errors.New("invalid sample config")
	ErrWrite         = errors.New("write sample data")
)
