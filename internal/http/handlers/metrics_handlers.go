package handlers

import (
	"net/http"
)

// GetDashboardMetricsHandler returns stock and today's sales figures.
func (s *Server) GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := s.metrics.GetDashboardMetrics()
	if err != nil {
		storageFailure(w, r, err, "failed to fetch metrics")
		return
	}
	respond(w, r, http.StatusOK, m)
}

// HealthHandler reports that the process is serving.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
