package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/store"
	"pathways-backend-go/internal/validation"
)

type SurveyDetail struct {
	models.SurveyTemplate
	Questions []models.SurveyQuestion `json:"questions"`
}

// CreateSurvey stores the template and its questions, numbered from 1 in the
// given order, in one transaction.
func CreateSurvey(ctx context.Context, st store.Store, creatorID, title string, description *string, questions []models.SurveyQuestionInput, ip string) (*SurveyDetail, *models.ActivityLog, error) {
	if res := validation.ValidateSurveyQuestions(questions); !res.IsValid {
		return nil, nil, ErrValidation(res.Errors)
	}
	survey := &models.SurveyTemplate{
		ID:          uuid.NewString(),
		Title:       validation.SanitizeText(title),
		Description: description,
		CreatedBy:   creatorID,
		IsActive:    true,
	}
	detail := &SurveyDetail{Questions: make([]models.SurveyQuestion, 0, len(questions))}
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		if err := q.CreateSurvey(ctx, survey); err != nil {
			return err
		}
		for i, in := range questions {
			options := []string{}
			for _, option := range in.Options {
				if clean := strings.TrimSpace(option); clean != "" {
					options = append(options, clean)
				}
			}
			encoded, err := json.Marshal(options)
			if err != nil {
				return err
			}
			question := &models.SurveyQuestion{
				ID:         uuid.NewString(),
				SurveyID:   survey.ID,
				Position:   i + 1,
				Text:       validation.SanitizeText(in.Text),
				Type:       in.Type,
				IsRequired: in.IsRequired,
				Options:    encoded,
			}
			if err := q.CreateSurveyQuestion(ctx, question); err != nil {
				return err
			}
			detail.Questions = append(detail.Questions, *question)
		}
		var err error
		entry, err = RecordActivity(ctx, q, creatorID, ActionSurveyCreated, Details{"survey_id": survey.ID, "questions": len(questions)}, ip)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	detail.SurveyTemplate = *survey
	return detail, entry, nil
}

func LoadSurvey(ctx context.Context, q store.SurveyQueries, surveyID string) (*SurveyDetail, error) {
	survey, err := q.GetSurvey(ctx, surveyID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound("Survey not found")
	}
	if err != nil {
		return nil, err
	}
	questions, err := q.ListSurveyQuestions(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return &SurveyDetail{SurveyTemplate: *survey, Questions: questions}, nil
}

func SetSurveyActive(ctx context.Context, st store.Store, surveyID string, active bool, actorID, ip string) (*models.ActivityLog, error) {
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		if err := q.SetSurveyActive(ctx, surveyID, active); errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Survey not found")
		} else if err != nil {
			return err
		}
		var err error
		entry, err = RecordActivity(ctx, q, actorID, ActionSurveyStatus, Details{"survey_id": surveyID, "is_active": active}, ip)
		return err
	})
	return entry, err
}

// SubmitSurveyResponse upserts the student's single response. Required
// questions are only enforced once the response is marked completed, and a
// completed response cannot be reopened.
func SubmitSurveyResponse(ctx context.Context, st store.Store, surveyID, studentID string, answers map[string]json.RawMessage, status, actorID, ip string) (*models.SurveyResponse, *models.ActivityLog, error) {
	if status == "" {
		status = validation.ResponseInProgress
	}
	survey, err := LoadSurvey(ctx, st, surveyID)
	if err != nil {
		return nil, nil, err
	}
	if !survey.IsActive {
		return nil, nil, ErrBadRequest("Survey is not active")
	}
	if res := validation.ValidateSurveyResponse(survey.Questions, answers, status); !res.IsValid {
		return nil, nil, ErrValidation(res.Errors)
	}
	if answers == nil {
		answers = map[string]json.RawMessage{}
	}
	encoded, err := json.Marshal(answers)
	if err != nil {
		return nil, nil, err
	}

	response := &models.SurveyResponse{
		ID:        uuid.NewString(),
		SurveyID:  surveyID,
		StudentID: studentID,
		Answers:   encoded,
		Status:    status,
	}
	var entry *models.ActivityLog
	err = st.WithTx(ctx, func(q store.Queries) error {
		existing, err := q.GetSurveyResponse(ctx, surveyID, studentID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if existing != nil && existing.Status == validation.ResponseCompleted && status != validation.ResponseCompleted {
			return ErrBadRequest("A completed response cannot be reopened")
		}
		if err := q.UpsertSurveyResponse(ctx, response); err != nil {
			return err
		}
		entry, err = RecordActivity(ctx, q, actorID, ActionSurveyResponded, Details{"survey_id": surveyID, "status": status}, ip)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return response, entry, nil
}
