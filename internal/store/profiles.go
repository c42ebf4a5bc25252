package store

import (
	"context"

	"pathways-backend-go/internal/models"
)

const profileColumns = `id, user_id, student_id_num, year_level, major, date_of_birth, bio,
  short_term_goals, long_term_goals, career_aspirations, linkedin_url, portfolio_url, github_url,
  resume_media_id, profile_completion, created_at, updated_at`

const summarySelect = `
SELECT sp.id, sp.user_id, u.email, u.first_name, u.last_name, sp.student_id_num, sp.year_level,
  sp.major, sp.profile_completion, u.is_active
FROM student_profiles sp
JOIN users u ON u.id = sp.user_id
`

func (q *queries) CreateProfile(ctx context.Context, profile *models.StudentProfile) error {
	return q.get(ctx, profile, `
INSERT INTO student_profiles (
  id, user_id, student_id_num, year_level, major, date_of_birth, bio, short_term_goals,
  long_term_goals, career_aspirations, linkedin_url, portfolio_url, github_url, profile_completion
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING `+profileColumns,
		profile.ID, profile.UserID, profile.StudentIDNum, profile.YearLevel, profile.Major,
		profile.DateOfBirth, profile.Bio, profile.ShortTermGoals, profile.LongTermGoals,
		profile.CareerAspirations, profile.LinkedInURL, profile.PortfolioURL, profile.GithubURL,
		profile.ProfileCompletion)
}

func (q *queries) GetProfile(ctx context.Context, id string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := q.get(ctx, &profile, `SELECT `+profileColumns+` FROM student_profiles WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (q *queries) GetProfileByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	err := q.get(ctx, &profile, `SELECT `+profileColumns+` FROM student_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile writes every column of the profile; callers merge changes first.
func (q *queries) UpdateProfile(ctx context.Context, profile *models.StudentProfile) error {
	return q.get(ctx, profile, `
UPDATE student_profiles
SET student_id_num = $2, year_level = $3, major = $4, date_of_birth = $5, bio = $6,
    short_term_goals = $7, long_term_goals = $8, career_aspirations = $9, linkedin_url = $10,
    portfolio_url = $11, github_url = $12, profile_completion = $13, updated_at = now()
WHERE id = $1
RETURNING `+profileColumns,
		profile.ID, profile.StudentIDNum, profile.YearLevel, profile.Major, profile.DateOfBirth,
		profile.Bio, profile.ShortTermGoals, profile.LongTermGoals, profile.CareerAspirations,
		profile.LinkedInURL, profile.PortfolioURL, profile.GithubURL, profile.ProfileCompletion)
}

func (q *queries) SetProfileResume(ctx context.Context, profileID, mediaID string) error {
	return q.execOne(ctx, `
UPDATE student_profiles SET resume_media_id = $2, updated_at = now() WHERE id = $1
`, profileID, mediaID)
}

func (q *queries) GetStudentSummary(ctx context.Context, profileID string) (*models.StudentSummary, error) {
	var summary models.StudentSummary
	if err := q.get(ctx, &summary, summarySelect+`WHERE sp.id = $1`, profileID); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListStudents returns every student, or only those enrolled in classID when set.
func (q *queries) ListStudents(ctx context.Context, classID string) ([]models.StudentSummary, error) {
	students := []models.StudentSummary{}
	if classID == "" {
		err := q.selectAll(ctx, &students, summarySelect+`ORDER BY u.last_name, u.first_name`)
		return students, err
	}
	err := q.selectAll(ctx, &students, summarySelect+`
JOIN class_enrollments ce ON ce.student_id = sp.id
WHERE ce.class_id = $1
ORDER BY u.last_name, u.first_name
`, classID)
	return students, err
}
