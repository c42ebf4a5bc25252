// Package access decides whether a caller may act on a resource. The predicates
// never trust ids supplied by the client for ownership; they resolve the caller's
// own records through the injected lookups.
package access

import (
	"context"
	"errors"

	"pathways-backend-go/internal/models"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("student profile not found")
)

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID    string
	Role  string
	Email string
}

func (i *Identity) HasRole(roles ...string) bool {
	if i == nil {
		return false
	}
	for _, role := range roles {
		if i.Role == role {
			return true
		}
	}
	return false
}

// ProfileLookup resolves a user id to that user's student profile id.
// It must return ErrNotFound when the user has no profile.
type ProfileLookup func(ctx context.Context, userID string) (string, error)

// ClassLookup reports the teacher that owns a class. It must return ErrNotFound
// when no such class exists.
type ClassLookup func(ctx context.Context, classID string) (teacherID string, err error)

func RequireAuth(caller *Identity) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	return nil
}

func RequireRole(caller *Identity, allowed ...string) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if !caller.HasRole(allowed...) {
		return ErrForbidden
	}
	return nil
}

// StudentOwnership lets teachers and admins through. A student passes only when
// their own profile id equals targetStudentID.
func StudentOwnership(ctx context.Context, caller *Identity, targetStudentID string, lookup ProfileLookup) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if caller.HasRole(models.RoleAdmin, models.RoleTeacher) {
		return nil
	}
	if caller.Role != models.RoleStudent {
		return ErrForbidden
	}
	ownID, err := lookup(ctx, caller.ID)
	if err != nil {
		return err
	}
	if ownID != targetStudentID {
		return ErrForbidden
	}
	return nil
}

// ClassAccess lets admins through and teachers only into classes they own.
func ClassAccess(ctx context.Context, caller *Identity, classID string, lookup ClassLookup) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if caller.Role == models.RoleAdmin {
		return nil
	}
	if caller.Role != models.RoleTeacher {
		return ErrForbidden
	}
	teacherID, err := lookup(ctx, classID)
	if errors.Is(err, ErrNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if teacherID != caller.ID {
		return ErrForbidden
	}
	return nil
}
