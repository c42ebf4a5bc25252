package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/store"
)

const DefaultGroupSize = 5

// GroupChanges carries the editable group fields; nil leaves a field unchanged.
type GroupChanges struct {
	Name              *string
	Description       *string
	MaxSize           *int
	Status            *string
	ProjectName       *string
	FormationCriteria json.RawMessage
}

type GroupDetail struct {
	models.Group
	Members []models.GroupMember `json:"members"`
}

func applyGroupChanges(group *models.Group, changes GroupChanges) {
	if changes.Name != nil {
		group.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Description != nil {
		group.Description = optionalText(*changes.Description)
	}
	if changes.MaxSize != nil {
		group.MaxSize = *changes.MaxSize
	}
	if changes.Status != nil {
		group.Status = *changes.Status
	}
	if changes.ProjectName != nil {
		group.ProjectName = optionalText(*changes.ProjectName)
	}
	if len(changes.FormationCriteria) > 0 {
		group.FormationCriteria = changes.FormationCriteria
	}
}

func CreateGroup(ctx context.Context, st store.Store, classID string, changes GroupChanges, actorID, ip string) (*models.Group, *models.ActivityLog, error) {
	group := &models.Group{
		ID:                uuid.NewString(),
		ClassID:           classID,
		MaxSize:           DefaultGroupSize,
		Status:            "forming",
		FormationCriteria: json.RawMessage(`{}`),
		CreatedBy:         actorID,
	}
	applyGroupChanges(group, changes)
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		if err := q.CreateGroup(ctx, group); err != nil {
			return err
		}
		var err error
		entry, err = RecordActivity(ctx, q, actorID, ActionGroupCreated, Details{"class_id": classID, "group_id": group.ID}, ip)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return group, entry, nil
}

// UpdateGroup rejects shrinking max_size below the current member count.
func UpdateGroup(ctx context.Context, st store.Store, classID, groupID string, changes GroupChanges, actorID, ip string) (*models.Group, *models.ActivityLog, error) {
	var group *models.Group
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		current, err := q.GetGroup(ctx, classID, groupID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Group not found")
		}
		if err != nil {
			return err
		}
		applyGroupChanges(current, changes)
		if changes.MaxSize != nil {
			members, err := q.ListGroupMembers(ctx, groupID)
			if err != nil {
				return err
			}
			if len(members) > current.MaxSize {
				return ErrBadRequest("Max size cannot be smaller than the current member count")
			}
		}
		if err := q.UpdateGroup(ctx, current); err != nil {
			return err
		}
		group = current
		entry, err = RecordActivity(ctx, q, actorID, ActionGroupUpdated, Details{"class_id": classID, "group_id": groupID}, ip)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return group, entry, nil
}

func DeleteGroup(ctx context.Context, st store.Store, classID, groupID, actorID, ip string) (*models.ActivityLog, error) {
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		if err := q.DeleteGroup(ctx, classID, groupID); errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Group not found")
		} else if err != nil {
			return err
		}
		var err error
		entry, err = RecordActivity(ctx, q, actorID, ActionGroupDeleted, Details{"class_id": classID, "group_id": groupID}, ip)
		return err
	})
	return entry, err
}

func LoadGroupDetail(ctx context.Context, q store.GroupQueries, classID, groupID string) (*GroupDetail, error) {
	group, err := q.GetGroup(ctx, classID, groupID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound("Group not found")
	}
	if err != nil {
		return nil, err
	}
	members, err := q.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &GroupDetail{Group: *group, Members: members}, nil
}

// AddGroupMember admits a student enrolled in the group's class while the group
// has room. The capacity check and insert share the transaction's row lock.
func AddGroupMember(ctx context.Context, st store.Store, classID, groupID, studentID, role, actorID, ip string) (*models.ActivityLog, error) {
	if role == "" {
		role = "member"
	}
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		if _, err := q.GetGroup(ctx, classID, groupID); errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Group not found")
		} else if err != nil {
			return err
		}
		enrolled, err := q.IsEnrolled(ctx, classID, studentID)
		if err != nil {
			return err
		}
		if !enrolled {
			return ErrBadRequest("Student is not enrolled in this class")
		}
		switch err := q.AddGroupMember(ctx, groupID, studentID, role); {
		case errors.Is(err, store.ErrGroupFull):
			return ErrBadRequest("Group is full")
		case errors.Is(err, store.ErrConflict):
			return ErrConflict("Student is already a member of this group")
		case err != nil:
			return err
		}
		entry, err = RecordActivity(ctx, q, actorID, ActionGroupMemberAdded, Details{
			"class_id": classID, "group_id": groupID, "student_id": studentID, "member_role": role,
		}, ip)
		return err
	})
	return entry, err
}

func RemoveGroupMember(ctx context.Context, st store.Store, classID, groupID, studentID, actorID, ip string) (*models.ActivityLog, error) {
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		if _, err := q.GetGroup(ctx, classID, groupID); errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Group not found")
		} else if err != nil {
			return err
		}
		if err := q.RemoveGroupMember(ctx, groupID, studentID); errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Student is not a member of this group")
		} else if err != nil {
			return err
		}
		var err error
		entry, err = RecordActivity(ctx, q, actorID, ActionGroupMemberRemove, Details{
			"class_id": classID, "group_id": groupID, "student_id": studentID,
		}, ip)
		return err
	})
	return entry, err
}

