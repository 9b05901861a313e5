package console

import "errors"

// ErrInvalidInput is returned by a parser for an answer outside the menu.
// The prompt recovers from it by asking again.
var ErrInvalidInput = errors.New("invalid input")
