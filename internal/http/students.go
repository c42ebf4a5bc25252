package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pathways-backend-go/internal/access"
	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/services"
	"pathways-backend-go/internal/store"
	"pathways-backend-go/internal/validation"
)

func (s *Server) ListStudents(w http.ResponseWriter, r *http.Request) {
	classID := strings.TrimSpace(r.URL.Query().Get("class_id"))
	if classID != "" {
		if err := access.ClassAccess(r.Context(), CurrentIdentity(r), classID, s.classLookup); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	students, err := s.Store.ListStudents(r.Context(), classID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"students": students, "total": len(students)})
}

func (s *Server) MyStudentRecord(w http.ResponseWriter, r *http.Request) {
	profileID, err := s.profileLookup(r.Context(), CurrentIdentity(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeStudentDetail(w, r, profileID)
}

func (s *Server) GetStudent(w http.ResponseWriter, r *http.Request) {
	s.writeStudentDetail(w, r, chi.URLParam(r, "studentId"))
}

func (s *Server) writeStudentDetail(w http.ResponseWriter, r *http.Request, profileID string) {
	detail, err := services.LoadStudentDetail(r.Context(), s.Store, profileID)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Student not found")
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"student": detail})
}

func (s *Server) StudentGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.Store.ListStudentGroups(r.Context(), chi.URLParam(r, "studentId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"groups": groups})
}

// UploadResume accepts a multipart "file" field and attaches it to the profile.
func (s *Server) UploadResume(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentId")
	if _, err := s.Store.GetProfile(r.Context(), studentID); errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Student not found")
		return
	} else if err != nil {
		s.fail(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteValidation(w, []string{validation.FileSizeMessage(s.Config.MaxUploadBytes)})
			return
		}
		WriteError(w, http.StatusBadRequest, "A file upload is required")
		return
	}
	defer r.MultipartForm.RemoveAll()
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "A file upload is required")
		return
	}
	defer file.Close()

	info := validation.FileInfo{
		FileType: header.Header.Get("Content-Type"),
		FileSize: header.Size,
		FileName: header.Filename,
	}
	if res := validation.ValidateFileUpload(info, s.Config.MaxUploadBytes); !res.IsValid {
		WriteValidation(w, res.Errors)
		return
	}
	asset, entry, err := services.AttachResume(r.Context(), s.Store, s.Config.MediaStoragePath, studentID,
		CurrentIdentity(r).ID, info.FileType, info.FileName, file, s.Config.MaxUploadBytes, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusCreated, "Resume uploaded successfully", Envelope{
		"media": asset,
		"url":   services.BuildAssetURL(asset.ID),
	})
}

func (s *Server) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.Store.ListGoals(r.Context(), chi.URLParam(r, "studentId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"goals": goals})
}

func (s *Server) GetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.Store.GetGoal(r.Context(), chi.URLParam(r, "studentId"), chi.URLParam(r, "goalId"))
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Goal not found")
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"goal": goal})
}

func (s *Server) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req models.GoalInput
	if !s.decode(w, r, &req) {
		return
	}
	if res := validation.ValidateGoal(req); !res.IsValid {
		WriteValidation(w, res.Errors)
		return
	}
	goal, entry, err := services.CreateGoal(r.Context(), s.Store, chi.URLParam(r, "studentId"), req, CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusCreated, "Goal created successfully", Envelope{"goal": goal})
}

func (s *Server) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req models.GoalInput
	if !s.decode(w, r, &req) {
		return
	}
	if res := validation.ValidateGoal(req); !res.IsValid {
		WriteValidation(w, res.Errors)
		return
	}
	goal, entry, err := services.UpdateGoal(r.Context(), s.Store, chi.URLParam(r, "studentId"), chi.URLParam(r, "goalId"), req, CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Goal updated successfully", Envelope{"goal": goal})
}

func (s *Server) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	entry, err := services.DeleteGoal(r.Context(), s.Store, chi.URLParam(r, "studentId"), chi.URLParam(r, "goalId"), CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Goal deleted successfully", nil)
}

func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := s.Store.ListActivities(r.Context(), chi.URLParam(r, "studentId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"activities": activities})
}

func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := s.Store.GetActivity(r.Context(), chi.URLParam(r, "studentId"), chi.URLParam(r, "activityId"))
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Activity not found")
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, "", Envelope{"activity": activity})
}

func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req models.ActivityInput
	if !s.decode(w, r, &req) {
		return
	}
	if res := validation.ValidateActivity(req); !res.IsValid {
		WriteValidation(w, res.Errors)
		return
	}
	activity, entry, err := services.CreateActivity(r.Context(), s.Store, chi.URLParam(r, "studentId"), req, CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusCreated, "Activity created successfully", Envelope{"activity": activity})
}

func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req models.ActivityInput
	if !s.decode(w, r, &req) {
		return
	}
	if res := validation.ValidateActivity(req); !res.IsValid {
		WriteValidation(w, res.Errors)
		return
	}
	activity, entry, err := services.UpdateActivity(r.Context(), s.Store, chi.URLParam(r, "studentId"), chi.URLParam(r, "activityId"), req, CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Activity updated successfully", Envelope{"activity": activity})
}

func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	entry, err := services.DeleteActivity(r.Context(), s.Store, chi.URLParam(r, "studentId"), chi.URLParam(r, "activityId"), CurrentIdentity(r).ID, clientIP(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.publish(entry)
	WriteSuccess(w, http.StatusOK, "Activity deleted successfully", nil)
}
