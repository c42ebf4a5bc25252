package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/store"
)

// ClassChanges carries the editable class fields; nil leaves a field unchanged.
type ClassChanges struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func CreateClass(ctx context.Context, st store.Store, teacherID, name string, description *string, ip string) (*models.Class, *models.ActivityLog, error) {
	code, err := NewClassCode(ctx, st.ClassCodeExists)
	if err != nil {
		return nil, nil, err
	}
	class := &models.Class{
		ID:          uuid.NewString(),
		TeacherID:   teacherID,
		Name:        strings.TrimSpace(name),
		Description: description,
		Code:        code,
		IsActive:    true,
	}
	var entry *models.ActivityLog
	err = st.WithTx(ctx, func(q store.Queries) error {
		if err := q.CreateClass(ctx, class); err != nil {
			return err
		}
		var err error
		entry, err = RecordActivity(ctx, q, teacherID, ActionClassCreated, Details{"class_id": class.ID, "code": class.Code}, ip)
		return err
	})
	if errors.Is(err, store.ErrConflict) {
		return nil, nil, ErrConflict("Class code already in use, please retry")
	}
	if err != nil {
		return nil, nil, err
	}
	return class, entry, nil
}

func UpdateClass(ctx context.Context, st store.Store, classID string, changes ClassChanges, actorID, ip string) (*models.Class, *models.ActivityLog, error) {
	var class *models.Class
	var entry *models.ActivityLog
	err := st.WithTx(ctx, func(q store.Queries) error {
		current, err := q.GetClass(ctx, classID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound("Class not found")
		}
		if err != nil {
			return err
		}
		if changes.Name != nil {
			current.Name = strings.TrimSpace(*changes.Name)
		}
		if changes.Description != nil {
			current.Description = optionalText(*changes.Description)
		}
		if changes.IsActive != nil {
			current.IsActive = *changes.IsActive
		}
		if err := q.UpdateClass(ctx, current); err != nil {
			return err
		}
		class = current
		entry, err = RecordActivity(ctx, q, actorID, ActionClassUpdated, Details{"class_id": classID, "is_active": class.IsActive}, ip)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return class, entry, nil
}
