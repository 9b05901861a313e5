package model

import "errors"

// Sentinel kinds for menu parsing errors.
var (
	ErrUnknownCity  = errors.New("unknown city")
	ErrUnknownMonth = errors.New("unknown month")
	ErrUnknownDay   = errors.New("unknown day")
)
