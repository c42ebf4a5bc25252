package httpapi

import (
	"net/http"
	"strings"

	"pathways-backend-go/internal/models"
)

func (s *Server) ListSkills(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category != "" && category != models.SkillCategoryTechnical && category != models.SkillCategorySoft {
		WriteValidation(w, []string{"category must be one of: technical, soft"})
		return
	}
	skills, err := s.Store.ListSkills(r.Context(), category)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"skills": skills})
}

func (s *Server) ListInterests(w http.ResponseWriter, r *http.Request) {
	interests, err := s.Store.ListInterests(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"interests": interests})
}
