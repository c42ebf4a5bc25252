package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/services"
	"pathways-backend-go/internal/store"
)

type AdminUserCreateRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,password_strength"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Role      string `json:"role" validate:"required,oneof=admin teacher student"`
}

type UserStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := parseInt(r.URL.Query().Get("page"), 1)
	pageSize := parseInt(r.URL.Query().Get("page_size"), 20)
	if pageSize > 100 {
		pageSize = 100
	}
	role := strings.TrimSpace(r.URL.Query().Get("role"))
	if role != "" && !models.ValidRole(role) {
		WriteError(w, http.StatusBadRequest, "Invalid role filter")
		return
	}
	users, total, err := s.Store.ListUsers(r.Context(), models.UserFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Role:   role,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{
		"items":     adminUsers(users),
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req AdminUserCreateRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := services.CreateUserAccount(r.Context(), s.Store, s.Tokens, CurrentIdentity(r).ID, services.Registration{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(result.Log)
	WriteSuccess(w, http.StatusCreated, "User created successfully", Envelope{
		"user":    result.User,
		"profile": profileSummary(result.Profile),
	})
}

// SetUserStatus activates or deactivates an account. Admins cannot
// deactivate themselves.
func (s *Server) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	var req UserStatusRequest
	if !s.decode(w, r, &req) {
		return
	}
	userID := chi.URLParam(r, "userId")
	actor := CurrentIdentity(r)
	if userID == actor.ID && !*req.IsActive {
		WriteError(w, http.StatusBadRequest, "You cannot deactivate your own account")
		return
	}
	var entry *models.ActivityLog
	err := s.Store.WithTx(r.Context(), func(q store.Queries) error {
		if err := q.SetUserActive(r.Context(), userID, *req.IsActive); errors.Is(err, store.ErrNotFound) {
			return services.ErrNotFound("User not found")
		} else if err != nil {
			return err
		}
		var err error
		entry, err = services.RecordActivity(r.Context(), q, actor.ID, services.ActionUserStatus,
			services.Details{"user_id": userID, "is_active": *req.IsActive}, clientIP(r))
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "User status updated", Envelope{"user_id": userID, "is_active": *req.IsActive})
}

func (s *Server) ActivityLogs(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 100)
	if limit > 500 {
		limit = 500
	}
	logs, err := s.Store.ListActivityLogs(r.Context(), strings.TrimSpace(r.URL.Query().Get("user_id")), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"logs": logs})
}
