package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/store"
)

const (
	invalidCredentials = "Invalid email or password"
	ResetTokenTTL      = time.Hour
)

type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	ClassCode string
}

type AccountResult struct {
	User    *models.User
	Profile *models.StudentProfile
	Log     *models.ActivityLog
}

// Register creates the user and, for students, the profile and class enrollment
// in one transaction.
func Register(ctx context.Context, st store.Store, tokens TokenService, in Registration, ip string) (*AccountResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	exists, err := st.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict("Email already registered")
	}

	var class *models.Class
	if in.Role == models.RoleStudent {
		class, err = st.GetClassByCode(ctx, strings.TrimSpace(in.ClassCode))
		if errors.Is(err, store.ErrNotFound) || (err == nil && !class.IsActive) {
			return nil, ErrBadRequest("Invalid or inactive class code")
		}
		if err != nil {
			return nil, err
		}
	}

	hash, err := tokens.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	result := &AccountResult{}
	err = st.WithTx(ctx, func(q store.Queries) error {
		user := &models.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
			Role:         in.Role,
			FirstName:    strings.TrimSpace(in.FirstName),
			LastName:     strings.TrimSpace(in.LastName),
			IsActive:     true,
		}
		if err := q.CreateUser(ctx, user); err != nil {
			return err
		}
		result.User = user

		if class != nil {
			profile := &models.StudentProfile{ID: uuid.NewString(), UserID: user.ID}
			profile.ProfileCompletion = ProfileCompletion(completionFor(user, profile, 0, 0, 0))
			if err := q.CreateProfile(ctx, profile); err != nil {
				return err
			}
			if err := q.EnrollStudent(ctx, class.ID, profile.ID); err != nil {
				return err
			}
			result.Profile = profile
		}

		details := Details{"role": user.Role}
		if class != nil {
			details["class_id"] = class.ID
		}
		entry, err := RecordActivity(ctx, q, user.ID, ActionRegister, details, ip)
		result.Log = entry
		return err
	})
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrConflict("Email already registered")
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Login reports the same error for unknown, deactivated and wrong-password accounts.
func Login(ctx context.Context, st store.Store, tokens TokenService, email, password, ip string) (*AccountResult, error) {
	user, err := st.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUnauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive || !tokens.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrUnauthorized(invalidCredentials)
	}

	result := &AccountResult{User: user}
	err = st.WithTx(ctx, func(q store.Queries) error {
		if err := q.TouchLastLogin(ctx, user.ID); err != nil {
			return err
		}
		entry, err := RecordActivity(ctx, q, user.ID, ActionLogin, nil, ip)
		result.Log = entry
		return err
	})
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user.LastLoginAt = &now
	return result, nil
}

// StartPasswordReset returns the raw token for an active account, or "" when
// no reset was started. Callers must answer identically in both cases.
func StartPasswordReset(ctx context.Context, st store.Store, email string) (string, error) {
	user, err := st.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", nil
	}
	token, digest, err := NewResetToken()
	if err != nil {
		return "", err
	}
	if err := st.SetResetToken(ctx, user.ID, digest, time.Now().Add(ResetTokenTTL)); err != nil {
		return "", err
	}
	return token, nil
}

func CompletePasswordReset(ctx context.Context, st store.Store, tokens TokenService, token, password, ip string) (*models.ActivityLog, error) {
	user, err := st.GetUserByResetToken(ctx, HashResetToken(strings.TrimSpace(token)))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrBadRequest("Invalid or expired reset token")
	}
	if err != nil {
		return nil, err
	}
	hash, err := tokens.HashPassword(password)
	if err != nil {
		return nil, err
	}
	var entry *models.ActivityLog
	err = st.WithTx(ctx, func(q store.Queries) error {
		if err := q.UpdatePassword(ctx, user.ID, hash); err != nil {
			return err
		}
		entry, err = RecordActivity(ctx, q, user.ID, ActionPasswordReset, nil, ip)
		return err
	})
	return entry, err
}

func ChangePassword(ctx context.Context, st store.Store, tokens TokenService, userID, current, next, ip string) (*models.ActivityLog, error) {
	user, err := st.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !tokens.VerifyPassword(current, user.PasswordHash) {
		return nil, ErrBadRequest("Current password is incorrect")
	}
	hash, err := tokens.HashPassword(next)
	if err != nil {
		return nil, err
	}
	var entry *models.ActivityLog
	err = st.WithTx(ctx, func(q store.Queries) error {
		if err := q.UpdatePassword(ctx, user.ID, hash); err != nil {
			return err
		}
		entry, err = RecordActivity(ctx, q, user.ID, ActionPasswordChanged, nil, ip)
		return err
	})
	return entry, err
}

// CreateUserAccount is the admin path: any role, no class code.
func CreateUserAccount(ctx context.Context, st store.Store, tokens TokenService, actorID string, in Registration, ip string) (*AccountResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	hash, err := tokens.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	result := &AccountResult{}
	err = st.WithTx(ctx, func(q store.Queries) error {
		user := &models.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
			Role:         in.Role,
			FirstName:    strings.TrimSpace(in.FirstName),
			LastName:     strings.TrimSpace(in.LastName),
			IsActive:     true,
		}
		if err := q.CreateUser(ctx, user); err != nil {
			return err
		}
		result.User = user
		if user.Role == models.RoleStudent {
			profile := &models.StudentProfile{ID: uuid.NewString(), UserID: user.ID}
			profile.ProfileCompletion = ProfileCompletion(completionFor(user, profile, 0, 0, 0))
			if err := q.CreateProfile(ctx, profile); err != nil {
				return err
			}
			result.Profile = profile
		}
		entry, err := RecordActivity(ctx, q, actorID, ActionUserCreated, Details{"user_id": user.ID, "role": user.Role}, ip)
		result.Log = entry
		return err
	})
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrConflict("Email already registered")
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
