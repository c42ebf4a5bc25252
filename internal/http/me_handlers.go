package httpapi

import (
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/services"
	"pathways-backend-go/internal/store"
	"pathways-backend-go/internal/validation"
)

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password_strength,nefield=CurrentPassword"`
}

func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	view, err := services.LoadProfileView(r.Context(), s.Store, CurrentIdentity(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"user": view})
}

// UpdateProfile validates the raw payload, then sanitizes it, so malformed
// URLs are reported instead of silently dropped.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdate
	if !s.decode(w, r, &req) {
		return
	}
	if res := validation.ValidateStudentProfile(req); !res.IsValid {
		WriteValidation(w, res.Errors)
		return
	}
	view, entry, err := services.UpdateProfile(r.Context(), s.Store, CurrentIdentity(r).ID, validation.SanitizeProfile(req), clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Profile updated successfully", Envelope{"user": view})
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !s.decode(w, r, &req) {
		return
	}
	entry, err := services.ChangePassword(r.Context(), s.Store, s.Tokens, CurrentIdentity(r).ID, req.CurrentPassword, req.NewPassword, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Password changed successfully", nil)
}

// MediaContent serves a stored file to its owner, teachers and admins.
func (s *Server) MediaContent(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	asset, err := s.Store.GetMediaAsset(r.Context(), chi.URLParam(r, "assetId"))
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Media not found")
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	owner := asset.OwnerUserID != nil && *asset.OwnerUserID == identity.ID
	if !owner && !identity.HasRole(models.RoleTeacher, models.RoleAdmin) {
		WriteError(w, http.StatusForbidden, "Access denied")
		return
	}
	file, err := services.OpenMediaAsset(s.Config.MediaStoragePath, asset)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if asset.Filename != nil {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": *asset.Filename}))
	}
	if asset.ContentType != "" {
		w.Header().Set("Content-Type", asset.ContentType)
	}
	http.ServeContent(w, r, "", info.ModTime(), file)
}
