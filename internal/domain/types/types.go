// Package types contains common types used across the application
package types

import "sort"

// Count is one row of a frequency table.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// SortCounts orders counts by count desc, then value asc.
func SortCounts(counts []Count) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Value < counts[j].Value
	})
}

// FromMap builds a sorted frequency table from a tally.
func FromMap(tally map[string]int) []Count {
	out := make([]Count, 0, len(tally))
	for v, n := range tally {
		out = append(out, Count{Value: v, Count: n})
	}
	SortCounts(out)
	return out
}
