package repository

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrDataSourceNotFound = errors.New("data source not found")
	ErrMalformedRecord    = errors.New("malformed record")
)
