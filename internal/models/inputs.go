package models

import (
	"encoding/json"
	"strings"
)

// ProfileUpdate is the PUT /users/profile payload. Nil pointers and nil slices
// mean the field was absent from the request.
type ProfileUpdate struct {
	FirstName         *string      `json:"first_name"`
	LastName          *string      `json:"last_name"`
	Phone             *string      `json:"phone"`
	StudentIDNum      *string      `json:"student_id_num"`
	YearLevel         *string      `json:"year_level"`
	Major             *string      `json:"major"`
	DateOfBirth       *string      `json:"date_of_birth"`
	Bio               *string      `json:"bio"`
	ShortTermGoals    *string      `json:"short_term_goals"`
	LongTermGoals     *string      `json:"long_term_goals"`
	CareerAspirations *string      `json:"career_aspirations"`
	LinkedInURL       *string      `json:"linkedin_url"`
	PortfolioURL      *string      `json:"portfolio_url"`
	GithubURL         *string      `json:"github_url"`
	TechnicalSkills   []SkillInput `json:"technical_skills"`
	SoftSkills        []SkillInput `json:"soft_skills"`
	Interests         []SkillInput `json:"interests"`
}

// SkillInput accepts either a bare name or an object with optional detail.
type SkillInput struct {
	Name             string  `json:"name"`
	ProficiencyLevel *string `json:"proficiency_level,omitempty"`
	YearsExperience  *int    `json:"years_experience,omitempty"`
	InterestLevel    *string `json:"interest_level,omitempty"`
}

func (s *SkillInput) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		return json.Unmarshal(data, &s.Name)
	}
	type plain SkillInput
	var value plain
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*s = SkillInput(value)
	return nil
}

type GoalInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	TargetDate  string `json:"target_date"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

type ActivityInput struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
	Hours        *json.Number `json:"hours"`
	Organization string       `json:"organization"`
	Position     string       `json:"position"`
	Achievements string       `json:"achievements"`
}

// HoursString returns the raw hours value, or "" when absent.
func (a ActivityInput) HoursString() string {
	if a.Hours == nil {
		return ""
	}
	return a.Hours.String()
}

type SurveyQuestionInput struct {
	Text       string   `json:"text"`
	Type       string   `json:"type"`
	IsRequired bool     `json:"is_required"`
	Options    []string `json:"options"`
}
