package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/store"
)

// Activity log actions.
const (
	ActionRegister          = "register"
	ActionLogin             = "login"
	ActionLogout            = "logout"
	ActionPasswordReset     = "password_reset"
	ActionPasswordChanged   = "password_changed"
	ActionProfileUpdated    = "profile_updated"
	ActionResumeUploaded    = "resume_uploaded"
	ActionGoalCreated       = "goal_created"
	ActionGoalUpdated       = "goal_updated"
	ActionGoalDeleted       = "goal_deleted"
	ActionActivityCreated   = "activity_created"
	ActionActivityUpdated   = "activity_updated"
	ActionActivityDeleted   = "activity_deleted"
	ActionClassCreated      = "class_created"
	ActionClassUpdated      = "class_updated"
	ActionGroupCreated      = "group_created"
	ActionGroupUpdated      = "group_updated"
	ActionGroupDeleted      = "group_deleted"
	ActionGroupMemberAdded  = "group_member_added"
	ActionGroupMemberRemove = "group_member_removed"
	ActionSurveyCreated     = "survey_created"
	ActionSurveyStatus      = "survey_status_changed"
	ActionSurveyResponded   = "survey_responded"
	ActionUserCreated       = "user_created"
	ActionUserStatus        = "user_status_changed"
)

type Details map[string]interface{}

// RecordActivity writes one activity log row. Pass the transaction's Queries so
// the row commits or rolls back with the change it describes.
func RecordActivity(ctx context.Context, q store.AuditQueries, userID, action string, details Details, ip string) (*models.ActivityLog, error) {
	if details == nil {
		details = Details{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	entry := &models.ActivityLog{
		ID:      uuid.NewString(),
		Action:  action,
		Details: payload,
	}
	if userID != "" {
		entry.UserID = &userID
	}
	if ip != "" {
		entry.IPAddress = &ip
	}
	if err := q.InsertActivityLog(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
