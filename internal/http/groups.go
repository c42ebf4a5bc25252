package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pathways-backend-go/internal/services"
)

type GroupRequest struct {
	Name              *string         `json:"name" validate:"omitempty,min=2,max=100"`
	Description       *string         `json:"description" validate:"omitempty,max=1000"`
	MaxSize           *int            `json:"max_size" validate:"omitempty,min=1,max=100"`
	Status            *string         `json:"status" validate:"omitempty,oneof=forming active completed archived"`
	ProjectName       *string         `json:"project_name" validate:"omitempty,max=255"`
	FormationCriteria json.RawMessage `json:"formation_criteria"`
}

type GroupCreateRequest struct {
	GroupRequest
	Name *string `json:"name" validate:"required,min=2,max=100"`
}

type GroupMemberRequest struct {
	StudentID  string `json:"student_id" validate:"required,uuid"`
	MemberRole string `json:"member_role" validate:"omitempty,oneof=member leader"`
}

func (g GroupRequest) changes() services.GroupChanges {
	return services.GroupChanges{
		Name:              g.Name,
		Description:       g.Description,
		MaxSize:           g.MaxSize,
		Status:            g.Status,
		ProjectName:       g.ProjectName,
		FormationCriteria: g.FormationCriteria,
	}
}

func validCriteria(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	var object map[string]interface{}
	return json.Unmarshal(raw, &object) == nil
}

func (s *Server) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.Store.ListGroups(r.Context(), chi.URLParam(r, "classId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"groups": groups})
}

func (s *Server) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req GroupCreateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !validCriteria(req.FormationCriteria) {
		WriteValidation(w, []string{"formation_criteria must be a JSON object"})
		return
	}
	changes := req.GroupRequest.changes()
	changes.Name = req.Name
	group, entry, err := services.CreateGroup(r.Context(), s.Store, chi.URLParam(r, "classId"), changes, CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusCreated, "Group created successfully", Envelope{"group": group})
}

func (s *Server) GetGroup(w http.ResponseWriter, r *http.Request) {
	detail, err := services.LoadGroupDetail(r.Context(), s.Store, chi.URLParam(r, "classId"), chi.URLParam(r, "groupId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"group": detail})
}

func (s *Server) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var req GroupRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !validCriteria(req.FormationCriteria) {
		WriteValidation(w, []string{"formation_criteria must be a JSON object"})
		return
	}
	group, entry, err := services.UpdateGroup(r.Context(), s.Store, chi.URLParam(r, "classId"), chi.URLParam(r, "groupId"), req.changes(), CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Group updated successfully", Envelope{"group": group})
}

func (s *Server) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	entry, err := services.DeleteGroup(r.Context(), s.Store, chi.URLParam(r, "classId"), chi.URLParam(r, "groupId"), CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Group deleted successfully", nil)
}

func (s *Server) AddGroupMember(w http.ResponseWriter, r *http.Request) {
	var req GroupMemberRequest
	if !s.decode(w, r, &req) {
		return
	}
	entry, err := services.AddGroupMember(r.Context(), s.Store, chi.URLParam(r, "classId"), chi.URLParam(r, "groupId"),
		req.StudentID, req.MemberRole, CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusCreated, "Member added successfully", nil)
}

func (s *Server) RemoveGroupMember(w http.ResponseWriter, r *http.Request) {
	entry, err := services.RemoveGroupMember(r.Context(), s.Store, chi.URLParam(r, "classId"), chi.URLParam(r, "groupId"),
		chi.URLParam(r, "studentId"), CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Member removed successfully", nil)
}
