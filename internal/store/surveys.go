package store

import (
	"context"

	"pathways-backend-go/internal/models"
)

const surveyColumns = `id, title, description, created_by, is_active, created_at, updated_at`

const responseColumns = `id, survey_id, student_id, answers, status, completed_at, created_at, updated_at`

func (q *queries) CreateSurvey(ctx context.Context, survey *models.SurveyTemplate) error {
	return q.get(ctx, survey, `
INSERT INTO survey_templates (id, title, description, created_by, is_active)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+surveyColumns,
		survey.ID, survey.Title, survey.Description, survey.CreatedBy, survey.IsActive)
}

func (q *queries) CreateSurveyQuestion(ctx context.Context, question *models.SurveyQuestion) error {
	return q.get(ctx, question, `
INSERT INTO survey_questions (id, survey_id, position, text, question_type, is_required, options)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, survey_id, position, text, question_type, is_required, options
`, question.ID, question.SurveyID, question.Position, question.Text, question.Type,
		question.IsRequired, jsonText(question.Options, "[]"))
}

func (q *queries) GetSurvey(ctx context.Context, id string) (*models.SurveyTemplate, error) {
	var survey models.SurveyTemplate
	if err := q.get(ctx, &survey, `SELECT `+surveyColumns+` FROM survey_templates WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &survey, nil
}

func (q *queries) ListSurveys(ctx context.Context, activeOnly bool) ([]models.SurveyTemplate, error) {
	surveys := []models.SurveyTemplate{}
	err := q.selectAll(ctx, &surveys, `
SELECT `+surveyColumns+`
FROM survey_templates
WHERE is_active OR NOT $1
ORDER BY created_at DESC
`, activeOnly)
	return surveys, err
}

func (q *queries) ListSurveyQuestions(ctx context.Context, surveyID string) ([]models.SurveyQuestion, error) {
	questions := []models.SurveyQuestion{}
	err := q.selectAll(ctx, &questions, `
SELECT id, survey_id, position, text, question_type, is_required, options
FROM survey_questions
WHERE survey_id = $1
ORDER BY position
`, surveyID)
	return questions, err
}

func (q *queries) SetSurveyActive(ctx context.Context, id string, active bool) error {
	return q.execOne(ctx, `UPDATE survey_templates SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
}

// UpsertSurveyResponse keeps one response per (survey, student); completed_at is
// stamped the first time the response is completed.
func (q *queries) UpsertSurveyResponse(ctx context.Context, response *models.SurveyResponse) error {
	return q.get(ctx, response, `
INSERT INTO survey_responses (id, survey_id, student_id, answers, status, completed_at)
VALUES ($1, $2, $3, $4, $5, CASE WHEN $5::text = 'completed' THEN now() END)
ON CONFLICT (survey_id, student_id) DO UPDATE
SET answers = EXCLUDED.answers,
    status = EXCLUDED.status,
    completed_at = COALESCE(survey_responses.completed_at, EXCLUDED.completed_at),
    updated_at = now()
RETURNING `+responseColumns,
		response.ID, response.SurveyID, response.StudentID, jsonText(response.Answers, "{}"), response.Status)
}

func (q *queries) GetSurveyResponse(ctx context.Context, surveyID, studentID string) (*models.SurveyResponse, error) {
	var response models.SurveyResponse
	err := q.get(ctx, &response, `
SELECT `+responseColumns+` FROM survey_responses WHERE survey_id = $1 AND student_id = $2
`, surveyID, studentID)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (q *queries) ListSurveyResponses(ctx context.Context, surveyID string) ([]models.SurveyResponse, error) {
	responses := []models.SurveyResponse{}
	err := q.selectAll(ctx, &responses, `
SELECT `+responseColumns+` FROM survey_responses WHERE survey_id = $1 ORDER BY updated_at DESC
`, surveyID)
	return responses, err
}
