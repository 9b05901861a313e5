package filter

import "errors"

// ErrInvalidCriterion is returned for a month or day name outside the menu.
var ErrInvalidCriterion = errors.New("invalid filter criterion")
