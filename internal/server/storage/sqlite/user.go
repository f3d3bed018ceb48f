package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/secondchance/secondchance/internal/models"
	"github.com/secondchance/secondchance/internal/server/storage"
)

// Insert stores a new user, assigning ID and CreatedAt.
// The unique index on email turns a duplicate insert into ErrEmailExists,
// so concurrent registrations for the same email cannot both succeed.
func (s *Storage) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	stored := *user
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = nil

	query := `
		INSERT INTO users (id, email, first_name, last_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NULL)
	`

	_, err := s.db.ExecContext(ctx, query,
		stored.ID,
		stored.Email,
		stored.FirstName,
		stored.LastName,
		stored.PasswordHash,
		stored.CreatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return nil, storage.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &stored, nil
}

// FindByEmail retrieves a user by email.
func (s *Storage) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, first_name, last_name, password_hash, created_at, updated_at
		FROM users
		WHERE email = ?
	`

	user := &models.User{}
	var updatedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if updatedAt.Valid {
		user.UpdatedAt = &updatedAt.Time
	}

	return user, nil
}

// UpdateByEmail applies patch to the user with the given email and stamps
// UpdatedAt. The write is a targeted field patch, not a whole-document
// rewrite, so it cannot clobber concurrent changes to other fields.
func (s *Storage) UpdateByEmail(ctx context.Context, email string, patch storage.UserPatch) (*models.User, error) {
	now := time.Now().UTC()

	query := `
		UPDATE users
		SET first_name = ?, updated_at = ?
		WHERE email = ?
	`

	result, err := s.db.ExecContext(ctx, query, patch.FirstName, now, email)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return nil, storage.ErrUserNotFound
	}

	return s.FindByEmail(ctx, email)
}
