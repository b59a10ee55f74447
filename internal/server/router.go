package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zeusync/raysense/internal/core/observability/log"
)

// Router builds the HTTP routes. It starts no goroutines, so it can be
// served directly by httptest.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/conditions", s.handleConditions)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/ws", s.handleStream)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.GetStats())
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.source.Snapshot())
}

// ConditionResult is one evaluated condition.
type ConditionResult struct {
	Name     string `json:"name"`
	Argument string `json:"argument"`
	Current  string `json:"current"`
	Holds    bool   `json:"holds"`
}

func (s *Server) evaluateConditions() []ConditionResult {
	out := make([]ConditionResult, 0, len(s.conditions))
	for _, c := range s.conditions {
		out = append(out, ConditionResult{
			Name:     c.Name,
			Argument: c.Argument(),
			Current:  c.Current(s.source, true),
			Holds:    c.Evaluate(s.source, true),
		})
	}
	return out
}

func (s *Server) handleConditions(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.evaluateConditions())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write response", log.Error(err))
	}
}
