package validation

import (
	"strings"

	"pathways-backend-go/internal/models"
)

var (
	YearLevels         = []string{"Freshman", "Sophomore", "Junior", "Senior", "Graduate"}
	GoalCategories     = []string{"academic", "career", "personal", "skill", "project"}
	GoalPriorities     = []string{"low", "medium", "high", "urgent"}
	GoalStatuses       = []string{"active", "completed", "paused", "cancelled"}
	ActivityCategories = []string{"academic", "sports", "volunteer", "work", "creative", "leadership", "other"}
	GroupStatuses      = []string{"forming", "active", "completed", "archived"}
	GroupMemberRoles   = []string{"member", "leader"}
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
	GoalStatusCancelled = "cancelled"
)

var goalTransitions = map[string][]string{
	GoalStatusActive: {GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled},
	GoalStatusPaused: {GoalStatusActive},
}

// CanTransitionGoal reports whether a goal may move from one status to another.
// Keeping the current status is always allowed.
func CanTransitionGoal(from, to string) bool {
	if from == to {
		return true
	}
	return oneOf(to, goalTransitions[from])
}

// ValidateStudentProfile checks only the fields present in the update. Names
// follow the registration rule and cannot be cleared; an empty phone clears it.
func ValidateStudentProfile(data models.ProfileUpdate) Result {
	var errs []string

	if data.FirstName != nil && !ValidateText(SanitizeText(*data.FirstName), 2, 50) {
		errs = append(errs, "First name must be 2-50 characters")
	}
	if data.LastName != nil && !ValidateText(SanitizeText(*data.LastName), 2, 50) {
		errs = append(errs, "Last name must be 2-50 characters")
	}
	if v := strings.TrimSpace(deref(data.Phone)); v != "" && !phonePattern.MatchString(v) {
		errs = append(errs, "Phone must be 7-20 digits, spaces or + ( ) - . characters")
	}
	if v := deref(data.StudentIDNum); v != "" && !ValidateText(v, 3, 20) {
		errs = append(errs, "Student ID must be 3-20 characters")
	}
	if v := deref(data.YearLevel); v != "" && !oneOf(v, YearLevels) {
		errs = append(errs, "Year level must be one of: "+strings.Join(YearLevels, ", "))
	}
	if v := deref(data.Major); v != "" && !ValidateText(v, 2, 100) {
		errs = append(errs, "Major must be 2-100 characters")
	}
	if !ValidateDate(deref(data.DateOfBirth)) {
		errs = append(errs, "Date of birth must be a valid date (YYYY-MM-DD)")
	}
	if !ValidateText(deref(data.Bio), 0, 1000) {
		errs = append(errs, "Bio must be 0-1000 characters")
	}
	if !ValidateText(deref(data.ShortTermGoals), 0, 500) {
		errs = append(errs, "Short-term goals must be 0-500 characters")
	}
	if !ValidateText(deref(data.LongTermGoals), 0, 500) {
		errs = append(errs, "Long-term goals must be 0-500 characters")
	}
	if !ValidateText(deref(data.CareerAspirations), 0, 500) {
		errs = append(errs, "Career aspirations must be 0-500 characters")
	}
	if !ValidateURL(deref(data.LinkedInURL)) {
		errs = append(errs, "LinkedIn URL must be a valid URL")
	}
	if !ValidateURL(deref(data.PortfolioURL)) {
		errs = append(errs, "Portfolio URL must be a valid URL")
	}
	if !ValidateURL(deref(data.GithubURL)) {
		errs = append(errs, "GitHub URL must be a valid URL")
	}
	return newResult(errs)
}

func ValidateGoal(data models.GoalInput) Result {
	var errs []string

	if !ValidateText(data.Title, 3, 255) {
		errs = append(errs, "Title is required and must be 3-255 characters")
	}
	if !ValidateText(data.Description, 10, 1000) {
		errs = append(errs, "Description is required and must be 10-1000 characters")
	}
	if !oneOf(data.Category, GoalCategories) {
		errs = append(errs, "Category is required and must be one of: "+strings.Join(GoalCategories, ", "))
	}
	if !ValidateDate(data.TargetDate) {
		errs = append(errs, "Target date must be a valid date (YYYY-MM-DD)")
	}
	if data.Priority != "" && !oneOf(data.Priority, GoalPriorities) {
		errs = append(errs, "Priority must be one of: "+strings.Join(GoalPriorities, ", "))
	}
	if data.Status != "" && !oneOf(data.Status, GoalStatuses) {
		errs = append(errs, "Status must be one of: "+strings.Join(GoalStatuses, ", "))
	}
	return newResult(errs)
}

func ValidateActivity(data models.ActivityInput) Result {
	var errs []string

	if !ValidateText(data.Title, 3, 255) {
		errs = append(errs, "Title is required and must be 3-255 characters")
	}
	if !oneOf(data.Category, ActivityCategories) {
		errs = append(errs, "Category is required and must be one of: "+strings.Join(ActivityCategories, ", "))
	}
	if !ValidateText(data.Description, 0, 1000) {
		errs = append(errs, "Description must be 0-1000 characters")
	}
	startOK := ValidateDate(data.StartDate)
	endOK := ValidateDate(data.EndDate)
	if !startOK {
		errs = append(errs, "Start date must be a valid date (YYYY-MM-DD)")
	}
	if !endOK {
		errs = append(errs, "End date must be a valid date (YYYY-MM-DD)")
	}
	if startOK && endOK && !ValidateDateRange(data.StartDate, data.EndDate) {
		errs = append(errs, "Start date must be before or equal to end date")
	}
	if !ValidateNumber(data.HoursString(), 0, 10000) {
		errs = append(errs, "Hours must be a whole number between 0 and 10000")
	}
	if !ValidateText(data.Organization, 0, 255) {
		errs = append(errs, "Organization must be 0-255 characters")
	}
	if !ValidateText(data.Position, 0, 255) {
		errs = append(errs, "Position must be 0-255 characters")
	}
	if !ValidateText(data.Achievements, 0, 1000) {
		errs = append(errs, "Achievements must be 0-1000 characters")
	}
	return newResult(errs)
}
