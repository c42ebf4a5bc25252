package store

import (
	"context"
	"strconv"
	"strings"
	"time"

	"pathways-backend-go/internal/models"
)

var _ Store = (*Postgres)(nil)

const userColumns = `id, email, password_hash, role, first_name, last_name, phone, is_active,
  last_login_at, reset_token_hash, reset_token_expires_at, created_at, updated_at`

func (q *queries) CreateUser(ctx context.Context, user *models.User) error {
	return q.get(ctx, user, `
INSERT INTO users (id, email, password_hash, role, first_name, last_name, phone, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING `+userColumns,
		user.ID, strings.ToLower(user.Email), user.PasswordHash, user.Role,
		user.FirstName, user.LastName, user.Phone, user.IsActive)
}

func (q *queries) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := q.get(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (q *queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := q.get(ctx, &user, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (q *queries) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := q.get(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, email)
	return exists, err
}

func (q *queries) TouchLastLogin(ctx context.Context, id string) error {
	now := time.Now().UTC()
	return q.execOne(ctx, `UPDATE users SET last_login_at = $1, updated_at = $1 WHERE id = $2`, now, id)
}

// UpdateUserContact changes only the fields that are non-nil.
func (q *queries) UpdateUserContact(ctx context.Context, id string, firstName, lastName, phone *string) error {
	return q.execOne(ctx, `
UPDATE users
SET first_name = COALESCE($2, first_name),
    last_name = COALESCE($3, last_name),
    phone = CASE WHEN $4::text IS NULL THEN phone ELSE NULLIF($4::text, '') END,
    updated_at = now()
WHERE id = $1
`, id, firstName, lastName, phone)
}

// UpdatePassword also invalidates any outstanding reset token.
func (q *queries) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return q.execOne(ctx, `
UPDATE users
SET password_hash = $2, reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = now()
WHERE id = $1
`, id, passwordHash)
}

func (q *queries) SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	return q.execOne(ctx, `
UPDATE users SET reset_token_hash = $2, reset_token_expires_at = $3, updated_at = now()
WHERE id = $1
`, id, tokenHash, expiresAt.UTC())
}

func (q *queries) GetUserByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	var user models.User
	err := q.get(ctx, &user, `
SELECT `+userColumns+`
FROM users
WHERE reset_token_hash = $1 AND reset_token_expires_at > now() AND is_active
`, tokenHash)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (q *queries) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		where = append(where, "(lower(email) LIKE $"+strconv.Itoa(len(args))+
			" OR lower(first_name || ' ' || last_name) LIKE $"+strconv.Itoa(len(args))+")")
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		where = append(where, "role = $"+strconv.Itoa(len(args)))
	}
	clause := strings.Join(where, " AND ")

	var total int
	if err := q.get(ctx, &total, `SELECT COUNT(*) FROM users WHERE `+clause, args...); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	users := []models.User{}
	err := q.selectAll(ctx, &users, `
SELECT `+userColumns+`
FROM users
WHERE `+clause+`
ORDER BY created_at DESC
LIMIT $`+strconv.Itoa(len(args)-1)+` OFFSET $`+strconv.Itoa(len(args)), args...)
	return users, total, err
}

func (q *queries) SetUserActive(ctx context.Context, id string, active bool) error {
	return q.execOne(ctx, `UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
}
