package access

import (
	"context"
	"errors"
	"testing"
)

func profiles(byUser map[string]string) ProfileLookup {
	return func(_ context.Context, userID string) (string, error) {
		id, ok := byUser[userID]
		if !ok {
			return "", ErrNotFound
		}
		return id, nil
	}
}

func classes(owners map[string]string) ClassLookup {
	return func(_ context.Context, classID string) (string, error) {
		owner, ok := owners[classID]
		if !ok {
			return "", ErrNotFound
		}
		return owner, nil
	}
}

func TestRequireRole(t *testing.T) {
	if err := RequireRole(nil, "admin"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	student := &Identity{ID: "u1", Role: "student"}
	if err := RequireRole(student, "teacher", "admin"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := RequireRole(student, "student"); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	if err := RequireAuth(student); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestStudentOwnership(t *testing.T) {
	ctx := context.Background()
	lookup := profiles(map[string]string{"u1": "p1", "u2": "p2"})

	tests := []struct {
		name   string
		caller *Identity
		target string
		want   error
	}{
		{"student own profile", &Identity{ID: "u1", Role: "student"}, "p1", nil},
		{"student other profile", &Identity{ID: "u1", Role: "student"}, "p2", ErrForbidden},
		{"student without profile", &Identity{ID: "u9", Role: "student"}, "p1", ErrNotFound},
		{"teacher any profile", &Identity{ID: "t1", Role: "teacher"}, "p2", nil},
		{"admin any profile", &Identity{ID: "a1", Role: "admin"}, "p1", nil},
		{"anonymous", nil, "p1", ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := StudentOwnership(ctx, tt.caller, tt.target, lookup)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClassAccess(t *testing.T) {
	ctx := context.Background()
	lookup := classes(map[string]string{"c1": "t1"})

	tests := []struct {
		name   string
		caller *Identity
		class  string
		want   error
	}{
		{"owner teacher", &Identity{ID: "t1", Role: "teacher"}, "c1", nil},
		{"other teacher", &Identity{ID: "t2", Role: "teacher"}, "c1", ErrForbidden},
		{"missing class", &Identity{ID: "t1", Role: "teacher"}, "c9", ErrForbidden},
		{"admin", &Identity{ID: "a1", Role: "admin"}, "c9", nil},
		{"student", &Identity{ID: "u1", Role: "student"}, "c1", ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassAccess(ctx, tt.caller, tt.class, lookup)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}
