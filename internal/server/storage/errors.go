package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that no user matched the lookup
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists indicates that a user with this email already exists.
	// The store-level unique index is the authoritative source of this error.
	ErrEmailExists = errors.New("email already exists")
)
