package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"pathways-backend-go/internal/models"
	"pathways-backend-go/internal/store"
)

// EnsureAdmin creates the configured admin account on first start. It does
// nothing when no credentials are configured or the email is already taken.
func EnsureAdmin(ctx context.Context, st store.Store, tokens TokenService, logger *slog.Logger, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	exists, err := st.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	result, err := CreateUserAccount(ctx, st, tokens, "", Registration{
		Email:     email,
		Password:  password,
		FirstName: "System",
		LastName:  "Administrator",
		Role:      models.RoleAdmin,
	}, "")
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("admin account created", "user_id", result.User.ID, "email", email)
	return nil
}
