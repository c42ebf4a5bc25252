package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"pathways-backend-go/internal/access"
	"pathways-backend-go/internal/models"
)

func (s *Server) MetricsHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 120)
	if limit > 500 {
		limit = 500
	}
	since := time.Now().Add(-24 * time.Hour)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "since must be an RFC 3339 timestamp")
			return
		}
		since = parsed
	}
	items, err := s.Store.ListMetricSamples(r.Context(), since, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"items": items})
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.Config.CorsOrigins) == 0 {
		return true
	}
	for _, allowed := range s.Config.CorsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// AdminSocket streams metric samples and activity entries to an admin.
// Browsers cannot set headers on a websocket handshake, so the access token
// travels in the token query parameter.
func (s *Server) AdminSocket(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		raw = bearerToken(r)
	}
	if raw == "" {
		s.fail(w, r, access.ErrUnauthenticated)
		return
	}
	identity, _, err := s.authenticate(r.Context(), raw)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if identity.Role != models.RoleAdmin {
		s.fail(w, r, access.ErrForbidden)
		return
	}
	upgrader := websocket.Upgrader{CheckOrigin: s.checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.Hub.Add(conn)
	defer func() {
		s.Hub.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
