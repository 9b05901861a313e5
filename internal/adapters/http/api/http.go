// Package api serves the metrics listener routes.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/okian/bikeshare/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Server wires HTTP routes for the metrics listener.
type Server struct {
	healthHandler  *HealthHandler
	metricsHandler http.Handler
	statsHandler   *StatsHandler
	recorder       RequestRecorder
}

// NewServer creates a server exposing gatherer and recording its own requests
// on recorder, which should register on gatherer's registry. A nil gatherer
// selects the global registry; a nil recorder selects the global manager.
func NewServer(gatherer prometheus.Gatherer, recorder RequestRecorder) *Server {
	if gatherer == nil {
		gatherer = metrics.GetRegistry()
	}
	if recorder == nil {
		recorder = metrics.Global()
	}
	return &Server{
		recorder:       recorder,
		healthHandler:  NewHealthHandler(),
		metricsHandler: NewMetricsHandler(gatherer),
		statsHandler:   NewStatsHandler(gathererStats{gatherer: gatherer}),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(r *mux.Router) {
	r.HandleFunc("/healthz", MetricsMiddleware(s.recorder, s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	r.HandleFunc("/stats", MetricsMiddleware(s.recorder, s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)
	r.Handle("/metrics", s.metricsHandler).Methods(http.MethodGet)
}

// Router returns a new router with every route registered.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	s.Register(r)
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
