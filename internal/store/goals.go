package store

import (
	"context"

	"pathways-backend-go/internal/models"
)

const goalColumns = `id, student_id, title, description, category, priority, status, target_date,
  created_at, updated_at`

const activityColumns = `id, student_id, title, description, category, start_date, end_date, hours,
  organization, position, achievements, created_at, updated_at`

func (q *queries) ListGoals(ctx context.Context, studentID string) ([]models.Goal, error) {
	goals := []models.Goal{}
	err := q.selectAll(ctx, &goals, `
SELECT `+goalColumns+`
FROM goals
WHERE student_id = $1
ORDER BY CASE status WHEN 'active' THEN 0 WHEN 'paused' THEN 1 ELSE 2 END, target_date NULLS LAST, created_at DESC
`, studentID)
	return goals, err
}

func (q *queries) GetGoal(ctx context.Context, studentID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	err := q.get(ctx, &goal, `SELECT `+goalColumns+` FROM goals WHERE id = $1 AND student_id = $2`, goalID, studentID)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (q *queries) CreateGoal(ctx context.Context, goal *models.Goal) error {
	return q.get(ctx, goal, `
INSERT INTO goals (id, student_id, title, description, category, priority, status, target_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+goalColumns,
		goal.ID, goal.StudentID, goal.Title, goal.Description, goal.Category, goal.Priority,
		goal.Status, goal.TargetDate)
}

func (q *queries) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	return q.get(ctx, goal, `
UPDATE goals
SET title = $3, description = $4, category = $5, priority = $6, status = $7, target_date = $8,
    updated_at = now()
WHERE id = $1 AND student_id = $2
RETURNING `+goalColumns,
		goal.ID, goal.StudentID, goal.Title, goal.Description, goal.Category, goal.Priority,
		goal.Status, goal.TargetDate)
}

func (q *queries) DeleteGoal(ctx context.Context, studentID, goalID string) error {
	return q.execOne(ctx, `DELETE FROM goals WHERE id = $1 AND student_id = $2`, goalID, studentID)
}

func (q *queries) ListActivities(ctx context.Context, studentID string) ([]models.Activity, error) {
	activities := []models.Activity{}
	err := q.selectAll(ctx, &activities, `
SELECT `+activityColumns+`
FROM activities
WHERE student_id = $1
ORDER BY start_date DESC NULLS LAST, created_at DESC
`, studentID)
	return activities, err
}

func (q *queries) GetActivity(ctx context.Context, studentID, activityID string) (*models.Activity, error) {
	var activity models.Activity
	err := q.get(ctx, &activity, `
SELECT `+activityColumns+` FROM activities WHERE id = $1 AND student_id = $2
`, activityID, studentID)
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (q *queries) CreateActivity(ctx context.Context, activity *models.Activity) error {
	return q.get(ctx, activity, `
INSERT INTO activities (
  id, student_id, title, description, category, start_date, end_date, hours, organization,
  position, achievements
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING `+activityColumns,
		activity.ID, activity.StudentID, activity.Title, activity.Description, activity.Category,
		activity.StartDate, activity.EndDate, activity.Hours, activity.Organization,
		activity.Position, activity.Achievements)
}

func (q *queries) UpdateActivity(ctx context.Context, activity *models.Activity) error {
	return q.get(ctx, activity, `
UPDATE activities
SET title = $3, description = $4, category = $5, start_date = $6, end_date = $7, hours = $8,
    organization = $9, position = $10, achievements = $11, updated_at = now()
WHERE id = $1 AND student_id = $2
RETURNING `+activityColumns,
		activity.ID, activity.StudentID, activity.Title, activity.Description, activity.Category,
		activity.StartDate, activity.EndDate, activity.Hours, activity.Organization,
		activity.Position, activity.Achievements)
}

func (q *queries) DeleteActivity(ctx context.Context, studentID, activityID string) error {
	return q.execOne(ctx, `DELETE FROM activities WHERE id = $1 AND student_id = $2`, activityID, studentID)
}
