package models

import "time"

// User represents a registered account in the users store.
// Email is the unique identity key; uniqueness is enforced by the store.
type User struct {
	ID           string     `json:"id"`                   // uuid, assigned by the store on insert
	Email        string     `json:"email"`                // unique, stored as given (no normalization)
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	PasswordHash string     `json:"-"`                    // bcrypt hash, never the plaintext
	CreatedAt    time.Time  `json:"created_at"`           // set by the store on insert
	UpdatedAt    *time.Time `json:"updated_at,omitempty"` // nil until first mutation
}
