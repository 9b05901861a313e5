package stats

import "github.com/okian/bikeshare/internal/domain/model"

// StationReport holds the most used stations and trip.
type StationReport struct {
	Start      string
	StartCount int
	End        string
	EndCount   int

	PairStart string
	PairEnd   string
	PairCount int
}

// Stations returns the modal start station, end station and (start, end)
// combination. Station names are grouped by exact string.
func Stations(table *model.Table) (StationReport, error) {
	if table.Len() == 0 {
		return StationReport{}, ErrEmptyDataset
	}

	starts := make(map[string]int)
	ends := make(map[string]int)
	pairs := make(map[pair]int)
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		starts[row.StartStation]++
		ends[row.EndStation]++
		pairs[pair{start: row.StartStation, end: row.EndStation}]++
	}

	var r StationReport
	r.Start, r.StartCount = mode(starts)
	r.End, r.EndCount = mode(ends)
	p, n := modePair(pairs)
	r.PairStart, r.PairEnd, r.PairCount = p.start, p.end, n
	return r, nil
}
