package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrServe = errors.New("metrics listener failed")
)
