package validation

import (
	"strings"

	"pathways-backend-go/internal/models"
)

// SanitizeText trims the value and collapses every internal whitespace run to one space.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}

// SanitizeURL returns the canonical form of u, or nil when u cannot be parsed as an
// absolute URL. An empty input is passed through so a client can clear the field.
func SanitizeURL(u string) *string {
	trimmed := strings.TrimSpace(u)
	if trimmed == "" {
		empty := ""
		return &empty
	}
	parsed, ok := parseAbsoluteURL(trimmed)
	if !ok {
		return nil
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	if parsed.Path == "" && parsed.RawPath == "" {
		parsed.Path = "/"
	}
	canonical := parsed.String()
	return &canonical
}

// SanitizeProfile returns a copy holding only the fields present in data.
// A URL that fails to sanitize is dropped from the copy.
func SanitizeProfile(data models.ProfileUpdate) models.ProfileUpdate {
	out := models.ProfileUpdate{
		FirstName:         sanitizeTextPtr(data.FirstName),
		LastName:          sanitizeTextPtr(data.LastName),
		Phone:             sanitizeTextPtr(data.Phone),
		StudentIDNum:      sanitizeTextPtr(data.StudentIDNum),
		YearLevel:         sanitizeTextPtr(data.YearLevel),
		Major:             sanitizeTextPtr(data.Major),
		DateOfBirth:       sanitizeTextPtr(data.DateOfBirth),
		Bio:               sanitizeTextPtr(data.Bio),
		ShortTermGoals:    sanitizeTextPtr(data.ShortTermGoals),
		LongTermGoals:     sanitizeTextPtr(data.LongTermGoals),
		CareerAspirations: sanitizeTextPtr(data.CareerAspirations),
		TechnicalSkills:   sanitizeSkills(data.TechnicalSkills),
		SoftSkills:        sanitizeSkills(data.SoftSkills),
		Interests:         sanitizeSkills(data.Interests),
	}
	if data.LinkedInURL != nil {
		out.LinkedInURL = SanitizeURL(*data.LinkedInURL)
	}
	if data.PortfolioURL != nil {
		out.PortfolioURL = SanitizeURL(*data.PortfolioURL)
	}
	if data.GithubURL != nil {
		out.GithubURL = SanitizeURL(*data.GithubURL)
	}
	return out
}

func sanitizeTextPtr(value *string) *string {
	if value == nil {
		return nil
	}
	clean := SanitizeText(*value)
	return &clean
}

// sanitizeSkills cleans names, drops blanks and keeps the first entry of each name
// (case-insensitive). A nil slice stays nil so absence is preserved.
func sanitizeSkills(items []models.SkillInput) []models.SkillInput {
	if items == nil {
		return nil
	}
	out := make([]models.SkillInput, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item.Name = SanitizeText(item.Name)
		if item.Name == "" {
			continue
		}
		key := strings.ToLower(item.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
