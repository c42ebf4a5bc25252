package services

import (
	"context"
	"net/http"
	"testing"

	"pathways-backend-go/internal/models"
)

func strPtr(s string) *string { return &s }

func seedStudentUser(m *memStore) *models.User {
	user := &models.User{
		ID: "user-1", Email: "ada@example.com", Role: models.RoleStudent,
		FirstName: "Ada", LastName: "Lovelace", IsActive: true,
	}
	m.users[user.ID] = user
	return user
}

func TestUpdateProfileCreatesProfileAndScoresIt(t *testing.T) {
	m := newMemStore()
	seedStudentUser(m)
	ctx := context.Background()

	view, entry, err := UpdateProfile(ctx, m, "user-1", models.ProfileUpdate{
		YearLevel:       strPtr("Junior"),
		Major:           strPtr("Computer Science"),
		Bio:             strPtr("Builds things"),
		ShortTermGoals:  strPtr("Finish the capstone"),
		LongTermGoals:   strPtr("Work on compilers"),
		TechnicalSkills: []models.SkillInput{{Name: "Go"}},
		Interests:       []models.SkillInput{{Name: "Robotics"}},
	}, "10.0.0.1")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if len(m.profiles) != 1 {
		t.Fatalf("profiles = %d, want 1", len(m.profiles))
	}
	if view.Profile == nil || view.Profile.ProfileCompletion != 100 {
		t.Fatalf("unexpected profile %+v", view.Profile)
	}
	stored := m.profiles[view.Profile.ID]
	if stored.ProfileCompletion != 100 {
		t.Errorf("stored completion = %d, want 100", stored.ProfileCompletion)
	}
	if len(view.TechnicalSkills) != 1 || len(view.SoftSkills) != 0 || len(view.Interests) != 1 {
		t.Errorf("skills %+v interests %+v", view.TechnicalSkills, view.Interests)
	}
	if entry == nil || entry.Action != ActionProfileUpdated {
		t.Errorf("unexpected log %+v", entry)
	}
}

func TestUpdateProfileReplacementRules(t *testing.T) {
	m := newMemStore()
	seedStudentUser(m)
	ctx := context.Background()
	full := models.ProfileUpdate{
		YearLevel:       strPtr("Junior"),
		Major:           strPtr("Computer Science"),
		Bio:             strPtr("Builds things"),
		ShortTermGoals:  strPtr("Finish the capstone"),
		LongTermGoals:   strPtr("Work on compilers"),
		TechnicalSkills: []models.SkillInput{{Name: "Go"}, {Name: "SQL"}},
		Interests:       []models.SkillInput{{Name: "Robotics"}},
	}
	if _, _, err := UpdateProfile(ctx, m, "user-1", full, ""); err != nil {
		t.Fatalf("seed update: %v", err)
	}

	tests := []struct {
		name       string
		update     models.ProfileUpdate
		completion int
		technical  int
		interests  int
	}{
		{"absent lists are kept", models.ProfileUpdate{Major: strPtr("Mathematics")}, 100, 2, 1},
		{"empty interests clear", models.ProfileUpdate{Interests: []models.SkillInput{}}, 90, 2, 0},
		{"replacing skills", models.ProfileUpdate{TechnicalSkills: []models.SkillInput{{Name: "Rust"}}}, 90, 1, 0},
		{"empty string clears a field", models.ProfileUpdate{Bio: strPtr("")}, 80, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, _, err := UpdateProfile(ctx, m, "user-1", tt.update, "")
			if err != nil {
				t.Fatalf("UpdateProfile: %v", err)
			}
			if view.Profile.ProfileCompletion != tt.completion {
				t.Errorf("completion = %d, want %d", view.Profile.ProfileCompletion, tt.completion)
			}
			if len(view.TechnicalSkills) != tt.technical || len(view.Interests) != tt.interests {
				t.Errorf("technical = %d interests = %d", len(view.TechnicalSkills), len(view.Interests))
			}
		})
	}

	profile, err := m.GetProfileByUserID(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetProfileByUserID: %v", err)
	}
	if profile.Bio != nil || profile.Major == nil || *profile.Major != "Mathematics" {
		t.Errorf("unexpected stored profile %+v", profile)
	}
}

func TestUpdateProfileTeacherHasNoProfile(t *testing.T) {
	m := newMemStore()
	m.users["t-1"] = &models.User{ID: "t-1", Email: "t@example.com", Role: models.RoleTeacher, FirstName: "Tess", LastName: "Teacher"}

	view, _, err := UpdateProfile(context.Background(), m, "t-1", models.ProfileUpdate{FirstName: strPtr("Theresa")}, "")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if view.Profile != nil || len(m.profiles) != 0 {
		t.Fatalf("teacher got a profile: %+v", view.Profile)
	}
	if view.User.FirstName != "Theresa" {
		t.Errorf("first name = %q", view.User.FirstName)
	}
}

func TestUpdateProfileRejectsBadDate(t *testing.T) {
	m := newMemStore()
	seedStudentUser(m)

	_, _, err := UpdateProfile(context.Background(), m, "user-1", models.ProfileUpdate{DateOfBirth: strPtr("2001-13-40")}, "")
	if status := serviceStatus(t, err); status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if len(m.logs) != 0 {
		t.Errorf("failed update was logged: %+v", m.logs)
	}
}
