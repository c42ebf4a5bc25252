package store

import (
	"context"

	"github.com/google/uuid"

	"pathways-backend-go/internal/models"
)

// UpsertSkill returns the id of the (name, category) catalog row, creating it
// if needed. The no-op update makes RETURNING yield the existing row.
func (q *queries) UpsertSkill(ctx context.Context, name, category string) (string, error) {
	var id string
	err := q.get(ctx, &id, `
INSERT INTO skills (id, name, category)
VALUES ($1, $2, $3)
ON CONFLICT (name, category) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`, uuid.NewString(), name, category)
	return id, err
}

func (q *queries) UpsertInterest(ctx context.Context, name, category string) (string, error) {
	var id string
	err := q.get(ctx, &id, `
INSERT INTO interests (id, name, category)
VALUES ($1, $2, $3)
ON CONFLICT (name, category) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`, uuid.NewString(), name, category)
	return id, err
}

func (q *queries) ListSkills(ctx context.Context, category string) ([]models.Skill, error) {
	skills := []models.Skill{}
	if category == "" {
		err := q.selectAll(ctx, &skills, `SELECT id, name, category FROM skills ORDER BY category, name`)
		return skills, err
	}
	err := q.selectAll(ctx, &skills, `SELECT id, name, category FROM skills WHERE category = $1 ORDER BY name`, category)
	return skills, err
}

func (q *queries) ListInterests(ctx context.Context) ([]models.Interest, error) {
	interests := []models.Interest{}
	err := q.selectAll(ctx, &interests, `SELECT id, name, category FROM interests ORDER BY name`)
	return interests, err
}

func (q *queries) ClearStudentSkills(ctx context.Context, studentID, category string) error {
	return q.exec(ctx, `
DELETE FROM student_skills ss
USING skills s
WHERE s.id = ss.skill_id AND ss.student_id = $1 AND s.category = $2
`, studentID, category)
}

func (q *queries) AddStudentSkill(ctx context.Context, studentID, skillID string, proficiency *string, years *int) error {
	return q.exec(ctx, `
INSERT INTO student_skills (student_id, skill_id, proficiency_level, years_experience)
VALUES ($1, $2, $3, $4)
ON CONFLICT (student_id, skill_id) DO UPDATE
SET proficiency_level = EXCLUDED.proficiency_level, years_experience = EXCLUDED.years_experience
`, studentID, skillID, proficiency, years)
}

func (q *queries) ListStudentSkills(ctx context.Context, studentID string) ([]models.StudentSkill, error) {
	skills := []models.StudentSkill{}
	err := q.selectAll(ctx, &skills, `
SELECT s.id AS skill_id, s.name, s.category, ss.proficiency_level, ss.years_experience
FROM student_skills ss
JOIN skills s ON s.id = ss.skill_id
WHERE ss.student_id = $1
ORDER BY s.category, s.name
`, studentID)
	return skills, err
}

func (q *queries) ClearStudentInterests(ctx context.Context, studentID string) error {
	return q.exec(ctx, `DELETE FROM student_interests WHERE student_id = $1`, studentID)
}

func (q *queries) AddStudentInterest(ctx context.Context, studentID, interestID string, level *string) error {
	return q.exec(ctx, `
INSERT INTO student_interests (student_id, interest_id, interest_level)
VALUES ($1, $2, $3)
ON CONFLICT (student_id, interest_id) DO UPDATE SET interest_level = EXCLUDED.interest_level
`, studentID, interestID, level)
}

func (q *queries) ListStudentInterests(ctx context.Context, studentID string) ([]models.StudentInterest, error) {
	interests := []models.StudentInterest{}
	err := q.selectAll(ctx, &interests, `
SELECT i.id AS interest_id, i.name, i.category, si.interest_level
FROM student_interests si
JOIN interests i ON i.id = si.interest_id
WHERE si.student_id = $1
ORDER BY i.name
`, studentID)
	return interests, err
}
