package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"pathways-backend-go/internal/access"
	"pathways-backend-go/internal/services"
	"pathways-backend-go/internal/store"
)

// Envelope is the body of every JSON response.
type Envelope map[string]interface{}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Detail  string   `json:"detail,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteSuccess merges payload into a {success: true, message} envelope.
func WriteSuccess(w http.ResponseWriter, status int, message string, payload Envelope) {
	body := Envelope{"success": true}
	if message != "" {
		body["message"] = message
	}
	for key, value := range payload {
		body[key] = value
	}
	WriteJSON(w, status, body)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

func WriteValidation(w http.ResponseWriter, errs []string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Validation failed", Errors: errs})
}

// fail renders err with the status its kind maps to. Unknown errors are logged
// and reported as a generic 500; the cause is only echoed in development.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr services.ServiceError
	switch {
	case errors.As(err, &svcErr):
		WriteJSON(w, svcErr.Status, ErrorResponse{Message: svcErr.Message, Errors: svcErr.Errors})
	case errors.Is(err, access.ErrUnauthenticated):
		WriteError(w, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, access.ErrForbidden):
		WriteError(w, http.StatusForbidden, "Access denied")
	case errors.Is(err, access.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Student profile not found")
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, store.ErrConflict):
		WriteError(w, http.StatusBadRequest, "Resource already exists")
	default:
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "request_id", requestID(r), "error", err)
		body := ErrorResponse{Message: "Internal server error"}
		if s.Config.IsDevelopment() {
			body.Detail = err.Error()
		}
		WriteJSON(w, http.StatusInternalServerError, body)
	}
}

// decode reads a JSON body and, when the value has validate tags, checks it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	if errs := s.Requests.Struct(dst); len(errs) > 0 {
		WriteValidation(w, errs)
		return false
	}
	return true
}
