package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"pathways-backend-go/internal/models"
)

const (
	QuestionText           = "text"
	QuestionTextarea       = "textarea"
	QuestionSingleChoice   = "single_choice"
	QuestionMultipleChoice = "multiple_choice"
	QuestionRating         = "rating"
	QuestionBoolean        = "boolean"

	ResponseInProgress = "in_progress"
	ResponseCompleted  = "completed"
)

var QuestionTypes = []string{
	QuestionText, QuestionTextarea, QuestionSingleChoice,
	QuestionMultipleChoice, QuestionRating, QuestionBoolean,
}

func isChoice(questionType string) bool {
	return questionType == QuestionSingleChoice || questionType == QuestionMultipleChoice
}

func ValidateSurveyQuestions(questions []models.SurveyQuestionInput) Result {
	var errs []string
	if len(questions) == 0 {
		errs = append(errs, "Survey must have at least one question")
	}
	for i, q := range questions {
		n := i + 1
		if !ValidateText(strings.TrimSpace(q.Text), 3, 500) {
			errs = append(errs, fmt.Sprintf("Question %d text must be 3-500 characters", n))
		}
		if !oneOf(q.Type, QuestionTypes) {
			errs = append(errs, fmt.Sprintf("Question %d type must be one of: %s", n, strings.Join(QuestionTypes, ", ")))
			continue
		}
		if isChoice(q.Type) && countDistinct(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("Question %d must have at least 2 distinct options", n))
		}
		if !isChoice(q.Type) && len(q.Options) > 0 {
			errs = append(errs, fmt.Sprintf("Question %d options are only allowed on choice questions", n))
		}
	}
	return newResult(errs)
}

func countDistinct(options []string) int {
	seen := map[string]bool{}
	for _, option := range options {
		option = strings.TrimSpace(option)
		if option != "" {
			seen[option] = true
		}
	}
	return len(seen)
}

// ValidateSurveyResponse checks answers (keyed by question id) against the survey's
// questions. Required questions are only enforced once status is completed.
func ValidateSurveyResponse(questions []models.SurveyQuestion, answers map[string]json.RawMessage, status string) Result {
	var errs []string
	if status != ResponseInProgress && status != ResponseCompleted {
		errs = append(errs, "Status must be one of: in_progress, completed")
	}

	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
		raw, answered := answers[q.ID]
		if !answered || isBlankAnswer(raw) {
			if q.IsRequired && status == ResponseCompleted {
				errs = append(errs, fmt.Sprintf("Question %d is required", q.Position))
			}
			continue
		}
		if msg := checkAnswer(q, raw); msg != "" {
			errs = append(errs, fmt.Sprintf("Question %d %s", q.Position, msg))
		}
	}
	var unknown []string
	for id := range answers {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		errs = append(errs, "Unknown question: "+id)
	}
	return newResult(errs)
}

func isBlankAnswer(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	var s string
	if json.Unmarshal(trimmed, &s) == nil {
		return strings.TrimSpace(s) == ""
	}
	var list []json.RawMessage
	if json.Unmarshal(trimmed, &list) == nil {
		return len(list) == 0
	}
	return false
}

func checkAnswer(q models.SurveyQuestion, raw json.RawMessage) string {
	switch q.Type {
	case QuestionText, QuestionTextarea:
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return "answer must be text"
		}
		if !ValidateText(s, 0, 5000) {
			return "answer must be at most 5000 characters"
		}
	case QuestionSingleChoice:
		var s string
		if json.Unmarshal(raw, &s) != nil || !oneOf(s, q.OptionList()) {
			return "answer must be one of the listed options"
		}
	case QuestionMultipleChoice:
		var picked []string
		if json.Unmarshal(raw, &picked) != nil {
			return "answer must be a list of options"
		}
		options := q.OptionList()
		for _, p := range picked {
			if !oneOf(p, options) {
				return "answer must only contain listed options"
			}
		}
	case QuestionRating:
		var n json.Number
		if json.Unmarshal(raw, &n) != nil || !ValidateNumber(n.String(), 1, 5) {
			return "answer must be a whole number between 1 and 5"
		}
	case QuestionBoolean:
		var b bool
		if json.Unmarshal(raw, &b) != nil {
			return "answer must be true or false"
		}
	}
	return ""
}
