package httpapi

import (
	"context"
	"net/http"
	"time"
)

// Health reports whether the database and Redis answer within two seconds.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	status := http.StatusOK
	checks := map[string]string{"database": "ok", "redis": "ok"}
	if err := s.Store.Ping(ctx); err != nil {
		s.Logger.Warn("health check failed", "component", "database", "error", err)
		checks["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	if s.Redis == nil {
		checks["redis"] = "disabled"
	} else if err := s.Redis.Ping(ctx).Err(); err != nil {
		s.Logger.Warn("health check failed", "component", "redis", "error", err)
		checks["redis"] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	summary := "healthy"
	if status != http.StatusOK {
		summary = "degraded"
	}
	WriteJSON(w, status, Envelope{
		"success": status == http.StatusOK,
		"status":  summary,
		"checks":  checks,
		"time":    time.Now().UTC(),
	})
}
