package storage

import (
	"context"

	"github.com/secondchance/secondchance/internal/models"
)

// UserPatch holds the mutable profile fields applied by UpdateByEmail.
// Only FirstName is patchable today.
type UserPatch struct {
	FirstName string
}

// UserStorage defines the interface for user persistence.
// Implementations must enforce email uniqueness at the store level.
type UserStorage interface {
	// FindByEmail retrieves a user by email.
	// Returns ErrUserNotFound if no such user exists.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Insert stores a new user, assigning ID and CreatedAt.
	// Returns ErrEmailExists if the email is already taken.
	Insert(ctx context.Context, user *models.User) (*models.User, error)

	// UpdateByEmail applies patch to the user with the given email, stamps
	// UpdatedAt and returns the post-update record.
	// Returns ErrUserNotFound if no such user exists.
	UpdateByEmail(ctx context.Context, email string, patch UserPatch) (*models.User, error)

	// Close releases the underlying store handle.
	Close() error
}
