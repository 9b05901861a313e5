// Package stats computes descriptive statistics over a trip table. Each
// aggregator is a single read-only pass and never modifies the table.
package stats

import "cmp"

// mode returns the most frequent key and its count. Among keys sharing the
// highest count the smallest one wins, so results do not depend on map order.
func mode[K cmp.Ordered](tally map[K]int) (K, int) {
	var (
		best      K
		bestCount int
		found     bool
	)
	for k, n := range tally {
		if !found || n > bestCount || (n == bestCount && k < best) {
			best, bestCount, found = k, n, true
		}
	}
	return best, bestCount
}

type pair struct {
	start string
	end   string
}

func (p pair) less(o pair) bool {
	if p.start != o.start {
		return p.start < o.start
	}
	return p.end < o.end
}

// modePair is mode for station pairs, ordered by start then end.
func modePair(tally map[pair]int) (pair, int) {
	var (
		best      pair
		bestCount int
		found     bool
	)
	for k, n := range tally {
		if !found || n > bestCount || (n == bestCount && k.less(best)) {
			best, bestCount, found = k, n, true
		}
	}
	return best, bestCount
}
