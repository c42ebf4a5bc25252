package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/services"
	"pathways-backend-go/internal/store"
)

type ClassCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type ClassUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	IsActive    *bool   `json:"is_active"`
}

func (s *Server) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req ClassCreateRequest
	if !s.decode(w, r, &req) {
		return
	}
	var description *string
	if req.Description != nil {
		description = optionalText(*req.Description)
	}
	class, entry, err := services.CreateClass(r.Context(), s.Store, CurrentIdentity(r).ID, req.Name, description, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusCreated, "Class created successfully", Envelope{"class": class})
}

// ListClasses shows teachers their own classes and admins every class.
func (s *Server) ListClasses(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	teacherID := identity.ID
	if identity.Role == models.RoleAdmin {
		teacherID = r.URL.Query().Get("teacher_id")
	}
	classes, err := s.Store.ListClasses(r.Context(), teacherID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"classes": classes})
}

func (s *Server) loadClass(w http.ResponseWriter, r *http.Request) (*models.Class, bool) {
	class, err := s.Store.GetClass(r.Context(), chi.URLParam(r, "classId"))
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Class not found")
		return nil, false
	}
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return class, true
}

func (s *Server) GetClass(w http.ResponseWriter, r *http.Request) {
	class, ok := s.loadClass(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"class": class})
}

func (s *Server) UpdateClass(w http.ResponseWriter, r *http.Request) {
	var req ClassUpdateRequest
	if !s.decode(w, r, &req) {
		return
	}
	class, entry, err := services.UpdateClass(r.Context(), s.Store, chi.URLParam(r, "classId"), services.ClassChanges{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}, CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Class updated successfully", Envelope{"class": class})
}

func (s *Server) ClassRoster(w http.ResponseWriter, r *http.Request) {
	students, err := s.Store.ListStudents(r.Context(), chi.URLParam(r, "classId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"students": students, "total": len(students)})
}

func (s *Server) ExportRoster(w http.ResponseWriter, r *http.Request) {
	class, ok := s.loadClass(w, r)
	if !ok {
		return
	}
	students, err := s.Store.ListStudents(r.Context(), class.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "roster-"+class.Code+".xlsx"))
	if err := services.WriteRosterXLSX(w, *class, students); err != nil {
		s.Logger.Error("roster export failed", "class_id", class.ID, "error", err)
	}
}
