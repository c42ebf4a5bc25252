package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/store"
	"pathways-backend-go/internal/validation"
)

func optionalText(value string) *string {
	clean := validation.SanitizeText(value)
	if clean == "" {
		return nil
	}
	return &clean
}

func goalFromInput(in models.GoalInput, goal *models.Goal) error {
	target, err := models.ParseOptionalDate(in.TargetDate)
	if err != nil {
		return ErrValidation([]string{"Target date must be a valid date (YYYY-MM-DD)"})
	}
	goal.Title = validation.SanitizeText(in.Title)
	goal.Description = validation.SanitizeText(in.Description)
	goal.Category = in.Category
	goal.TargetDate = target
	goal.Priority = in.Priority
	if goal.Priority == "" {
		goal.Priority = "medium"
	}
	return nil
}

// CreateGoal expects a payload already accepted by validation.ValidateGoal.
func CreateGoal(ctx context.Context, st store.Store, studentID string, in models.GoalInput, actorID, ip string) (*models.Goal, *models.ActivityLog, error) {
	goal := &models.Goal{ID: uuid.NewString(), StudentID: studentID, Status: validation.GoalStatusActive}
	if err := goalFromInput(in, goal); err != nil {
		return nil, nil, err
	}
	if in.Status != "" {
		goal.Status = in.Status
	}
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		if err := q.CreateGoal(ctx, goal); err != nil {
			return err
		}
		var err error
		entry, err = RecordActivity(ctx, q, actorID, ActionGoalCreated, Details{"goal_id": goal.ID, "student_id": studentID}, ip)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return goal, entry, nil
}

// UpdateGoal replaces the goal. A status change must follow the goal lifecycle;
// an empty status keeps the current one.
func UpdateGoal(ctx context.Context, st store.Store, studentID, goalID string, in models.GoalInput, actorID, ip string) (*models.Goal, *models.ActivityLog, error) {
	var goal *models.Goal
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		current, err := q.GetGoal(ctx, studentID, goalID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Goal not found")
		}
		if err != nil {
			return err
		}
		previous := current.Status
		if in.Status != "" && !validation.CanTransitionGoal(previous, in.Status) {
			return ErrBadRequest("Cannot change goal status from " + previous + " to " + in.Status)
		}
		if err := goalFromInput(in, current); err != nil {
			return err
		}
		if in.Status != "" {
			current.Status = in.Status
		}
		if err := q.UpdateGoal(ctx, current); err != nil {
			return err
		}
		goal = current
		details := Details{"goal_id": goal.ID, "student_id": studentID}
		if previous != goal.Status {
			details["status_from"] = previous
			details["status_to"] = goal.Status
		}
		entry, err = RecordActivity(ctx, q, actorID, ActionGoalUpdated, details, ip)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return goal, entry, nil
}

func DeleteGoal(ctx context.Context, st store.Store, studentID, goalID, actorID, ip string) (*models.ActivityLog, error) {
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		if err := q.DeleteGoal(ctx, studentID, goalID); errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Goal not found")
		} else if err != nil {
			return err
		}
		var err error
		entry, err = RecordActivity(ctx, q, actorID, ActionGoalDeleted, Details{"goal_id": goalID, "student_id": studentID}, ip)
		return err
	})
	return entry, err
}

func activityFromInput(in models.ActivityInput, activity *models.Activity) error {
	start, err := models.ParseOptionalDate(in.StartDate)
	if err != nil {
		return ErrValidation([]string{"Start date must be a valid date (YYYY-MM-DD)"})
	}
	end, err := models.ParseOptionalDate(in.EndDate)
	if err != nil {
		return ErrValidation([]string{"End date must be a valid date (YYYY-MM-DD)"})
	}
	activity.Hours = nil
	if raw := in.HoursString(); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return ErrValidation([]string{"Hours must be a whole number between 0 and 10000"})
		}
		activity.Hours = &hours
	}
	activity.Title = validation.SanitizeText(in.Title)
	activity.Category = in.Category
	activity.Description = optionalText(in.Description)
	activity.StartDate = start
	activity.EndDate = end
	activity.Organization = optionalText(in.Organization)
	activity.Position = optionalText(in.Position)
	activity.Achievements = optionalText(in.Achievements)
	return nil
}

// CreateActivity expects a payload already accepted by validation.ValidateActivity.
func CreateActivity(ctx context.Context, st store.Store, studentID string, in models.ActivityInput, actorID, ip string) (*models.Activity, *models.ActivityLog, error) {
	activity := &models.Activity{ID: uuid.NewString(), StudentID: studentID}
	if err := activityFromInput(in, activity); err != nil {
		return nil, nil, err
	}
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		if err := q.CreateActivity(ctx, activity); err != nil {
			return err
		}
		var err error
		entry, err = RecordActivity(ctx, q, actorID, ActionActivityCreated, Details{"activity_id": activity.ID, "student_id": studentID}, ip)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return activity, entry, nil
}

func UpdateActivity(ctx context.Context, st store.Store, studentID, activityID string, in models.ActivityInput, actorID, ip string) (*models.Activity, *models.ActivityLog, error) {
	var activity *models.Activity
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		current, err := q.GetActivity(ctx, studentID, activityID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Activity not found")
		}
		if err != nil {
			return err
		}
		if err := activityFromInput(in, current); err != nil {
			return err
		}
		if err := q.UpdateActivity(ctx, current); err != nil {
			return err
		}
		activity = current
		entry, err = RecordActivity(ctx, q, actorID, ActionActivityUpdated, Details{"activity_id": activityID, "student_id": studentID}, ip)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return activity, entry, nil
}

func DeleteActivity(ctx context.Context, st store.Store, studentID, activityID, actorID, ip string) (*models.ActivityLog, error) {
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		if err := q.DeleteActivity(ctx, studentID, activityID); errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Activity not found")
		} else if err != nil {
			return err
		}
		var err error
		entry, err = RecordActivity(ctx, q, actorID, ActionActivityDeleted, Details{"activity_id": activityID, "student_id": studentID}, ip)
		return err
	})
	return entry, err
}
