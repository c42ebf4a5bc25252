package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/services"
)

type SurveyCreateRequest struct {
	Title       string                       `json:"title" validate:"required,min=3,max=255"`
	Description *string                      `json:"description" validate:"omitempty,max=2000"`
	Questions   []models.SurveyQuestionInput `json:"questions" validate:"required,min=1,max=100"`
}

type SurveyStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type SurveyResponseRequest struct {
	Answers map[string]json.RawMessage `json:"answers"`
	Status  string                     `json:"status" validate:"omitempty,oneof=in_progress completed"`
}

func (s *Server) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	var req SurveyCreateRequest
	if !s.decode(w, r, &req) {
		return
	}
	var description *string
	if req.Description != nil {
		description = optionalText(*req.Description)
	}
	survey, entry, err := services.CreateSurvey(r.Context(), s.Store, CurrentIdentity(r).ID, req.Title, description, req.Questions, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusCreated, "Survey created successfully", Envelope{"survey": survey})
}

// ListSurveys hides inactive surveys from students.
func (s *Server) ListSurveys(w http.ResponseWriter, r *http.Request) {
	activeOnly := CurrentIdentity(r).Role == models.RoleStudent
	surveys, err := s.Store.ListSurveys(r.Context(), activeOnly)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"surveys": surveys})
}

func (s *Server) GetSurvey(w http.ResponseWriter, r *http.Request) {
	survey, err := services.LoadSurvey(r.Context(), s.Store, chi.URLParam(r, "surveyId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !survey.IsActive && CurrentIdentity(r).Role == models.RoleStudent {
		WriteError(w, http.StatusNotFound, "Survey not found")
		return
	}
	payload := Envelope{"survey": survey}
	if CurrentIdentity(r).Role == models.RoleStudent {
		if profileID, err := s.profileLookup(r.Context(), CurrentIdentity(r).ID); err == nil {
			if response, err := s.Store.GetSurveyResponse(r.Context(), survey.ID, profileID); err == nil {
				payload["response"] = response
			}
		}
	}
	WriteSuccess(w, http.StatusOK, "", payload)
}

// requireSurveyOwner lets the survey's creator and admins through.
func (s *Server) requireSurveyOwner(w http.ResponseWriter, r *http.Request) (*services.SurveyDetail, bool) {
	survey, err := services.LoadSurvey(r.Context(), s.Store, chi.URLParam(r, "surveyId"))
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	identity := CurrentIdentity(r)
	if identity.Role != models.RoleAdmin && survey.CreatedBy != identity.ID {
		WriteError(w, http.StatusForbidden, "Access denied")
		return nil, false
	}
	return survey, true
}

func (s *Server) SetSurveyStatus(w http.ResponseWriter, r *http.Request) {
	var req SurveyStatusRequest
	if !s.decode(w, r, &req) {
		return
	}
	survey, ok := s.requireSurveyOwner(w, r)
	if !ok {
		return
	}
	entry, err := services.SetSurveyActive(r.Context(), s.Store, survey.ID, *req.IsActive, CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Survey status updated", Envelope{"is_active": *req.IsActive})
}

func (s *Server) SubmitSurveyResponse(w http.ResponseWriter, r *http.Request) {
	var req SurveyResponseRequest
	if !s.decode(w, r, &req) {
		return
	}
	profileID, err := s.profileLookup(r.Context(), CurrentIdentity(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	response, entry, err := services.SubmitSurveyResponse(r.Context(), s.Store, chi.URLParam(r, "surveyId"), profileID,
		req.Answers, req.Status, CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Response saved", Envelope{"response": response})
}

func (s *Server) ListSurveyResponses(w http.ResponseWriter, r *http.Request) {
	survey, ok := s.requireSurveyOwner(w, r)
	if !ok {
		return
	}
	responses, err := s.Store.ListSurveyResponses(r.Context(), survey.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"responses": responses, "total": len(responses)})
}
