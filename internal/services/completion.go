package services

import (
	"math"
	"strings"
)

// CompletionInput is the subset of a student record that drives the completion score.
type CompletionInput struct {
	FirstName       string
	LastName        string
	Email           string
	YearLevel       string
	Major           string
	ShortTermGoals  string
	LongTermGoals   string
	Bio             string
	TechnicalSkills int
	SoftSkills      int
	Interests       int
}

// ProfileCompletion scores a profile 0-100: eight text fields share 80 points,
// any skill adds 10 and any interest adds 10.
func ProfileCompletion(in CompletionInput) int {
	fields := []string{
		in.FirstName, in.LastName, in.Email, in.YearLevel,
		in.Major, in.ShortTermGoals, in.LongTermGoals, in.Bio,
	}
	completed := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			completed++
		}
	}
	score := float64(completed) / float64(len(fields)) * 80
	if in.TechnicalSkills > 0 || in.SoftSkills > 0 {
		score += 10
	}
	if in.Interests > 0 {
		score += 10
	}
	result := int(math.Round(score))
	if result > 100 {
		result = 100
	}
	return result
}
