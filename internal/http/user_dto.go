package httpapi

import (
	"pathways-backend-go/internal/models"
)

// ProfileSummaryDTO is the short profile shown alongside the current user.
type ProfileSummaryDTO struct {
	ID                string  `json:"id"`
	StudentIDNum      *string `json:"student_id_num,omitempty"`
	YearLevel         *string `json:"year_level,omitempty"`
	Major             *string `json:"major,omitempty"`
	ProfileCompletion int     `json:"profile_completion"`
	HasResume         bool    `json:"has_resume"`
}

func profileSummary(profile *models.StudentProfile) *ProfileSummaryDTO {
	if profile == nil {
		return nil
	}
	return &ProfileSummaryDTO{
		ID:                profile.ID,
		StudentIDNum:      profile.StudentIDNum,
		YearLevel:         profile.YearLevel,
		Major:             profile.Major,
		ProfileCompletion: profile.ProfileCompletion,
		HasResume:         profile.ResumeMediaID != nil,
	}
}

// AdminUserDTO is a user row as listed in the admin console.
type AdminUserDTO struct {
	models.User
	FullName string `json:"full_name"`
}

func adminUsers(users []models.User) []AdminUserDTO {
	items := make([]AdminUserDTO, 0, len(users))
	for _, u := range users {
		items = append(items, AdminUserDTO{User: u, FullName: u.FirstName + " " + u.LastName})
	}
	return items
}
