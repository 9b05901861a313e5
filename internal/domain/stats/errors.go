package stats

import "errors"

// ErrEmptyDataset is returned by every aggregator when the table has no rows.
var ErrEmptyDataset = errors.New("no rows to aggregate")
