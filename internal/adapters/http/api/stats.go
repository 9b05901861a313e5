package api

import (
	"net/http"

	"github.com/okian/bikeshare/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// StatsProvider defines the interface for getting explorer statistics.
type StatsProvider interface {
	GetStats() (map[string]float64, error)
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests with a JSON object of metric
// totals keyed by metric name.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := h.statsProvider.GetStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats_unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// gathererStats reads totals straight from a metrics registry.
type gathererStats struct {
	gatherer prometheus.Gatherer
}

func (g gathererStats) GetStats() (map[string]float64, error) {
	return metrics.Snapshot(g.gatherer)
}
