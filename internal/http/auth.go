package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pathways-backend-go/internal/access"
	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/services"
	"pathways-backend-go/internal/store"
)

type contextKey string

const (
	ctxIdentity contextKey = "identity"
	ctxClaims   contextKey = "claims"
)

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

// authenticate resolves a raw access token to the caller. The token must be
// unrevoked and its user must still exist and be active; the role is read
// from the user row so role changes apply immediately.
func (s *Server) authenticate(ctx context.Context, raw string) (*access.Identity, services.TokenClaims, error) {
	claims, err := s.Tokens.ParseAccessToken(raw)
	if err != nil {
		return nil, claims, access.ErrUnauthenticated
	}
	revoked, err := s.Revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, claims, err
	}
	if revoked {
		return nil, claims, access.ErrUnauthenticated
	}
	user, err := s.Store.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, claims, access.ErrUnauthenticated
	}
	if err != nil {
		return nil, claims, err
	}
	if !user.IsActive {
		return nil, claims, access.ErrUnauthenticated
	}
	return &access.Identity{ID: user.ID, Role: user.Role, Email: user.Email}, claims, nil
}

func withIdentity(r *http.Request, identity *access.Identity, claims services.TokenClaims) *http.Request {
	ctx := context.WithValue(r.Context(), ctxIdentity, identity)
	ctx = context.WithValue(ctx, ctxClaims, claims)
	return r.WithContext(ctx)
}

func (s *Server) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			s.fail(w, r, access.ErrUnauthenticated)
			return
		}
		identity, claims, err := s.authenticate(r.Context(), raw)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		next.ServeHTTP(w, withIdentity(r, identity, claims))
	})
}

// OptionalAuth attaches the caller when a valid token is present and never fails.
func (s *Server) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := bearerToken(r); raw != "" {
			if identity, claims, err := s.authenticate(r.Context(), raw); err == nil {
				r = withIdentity(r, identity, claims)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func CurrentIdentity(r *http.Request) *access.Identity {
	if value, ok := r.Context().Value(ctxIdentity).(*access.Identity); ok {
		return value
	}
	return nil
}

func currentClaims(r *http.Request) (services.TokenClaims, bool) {
	claims, ok := r.Context().Value(ctxClaims).(services.TokenClaims)
	return claims, ok
}

func (s *Server) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := access.RequireRole(CurrentIdentity(r), roles...); err != nil {
				s.fail(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) profileLookup(ctx context.Context, userID string) (string, error) {
	profile, err := s.Store.GetProfileByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return "", access.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

func (s *Server) classLookup(ctx context.Context, classID string) (string, error) {
	class, err := s.Store.GetClass(ctx, classID)
	if errors.Is(err, store.ErrNotFound) {
		return "", access.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return class.TeacherID, nil
}

// RequireStudentOwnership guards routes carrying a {studentId} profile id.
func (s *Server) RequireStudentOwnership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "studentId")
		identity := CurrentIdentity(r)
		if err := access.StudentOwnership(r.Context(), identity, studentID, s.profileLookup); err != nil {
			s.fail(w, r, err)
			return
		}
		// Students passed by matching their own profile; staff get an existence check.
		if identity.Role != models.RoleStudent {
			if _, err := s.Store.GetProfile(r.Context(), studentID); errors.Is(err, store.ErrNotFound) {
				s.fail(w, r, access.ErrNotFound)
				return
			} else if err != nil {
				s.fail(w, r, err)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireClassAccess guards routes carrying a {classId}.
func (s *Server) RequireClassAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		classID := chi.URLParam(r, "classId")
		if err := access.ClassAccess(r.Context(), CurrentIdentity(r), classID, s.classLookup); err != nil {
			s.fail(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
