package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/secondchance/secondchance/internal/models"
	"github.com/secondchance/secondchance/internal/server/storage"
)

// Insert stores a new user, assigning ID and CreatedAt.
// The existence check and the put run inside a single Update transaction,
// which bbolt serializes, so concurrent same-email inserts cannot race.
func (s *Storage) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	stored := *user
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = nil

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUsers)
		if bucket == nil {
			return fmt.Errorf("users bucket not found")
		}

		if bucket.Get([]byte(stored.Email)) != nil {
			return storage.ErrEmailExists
		}

		data, err := marshalUser(&stored)
		if err != nil {
			return err
		}

		if err := bucket.Put([]byte(stored.Email), data); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// FindByEmail retrieves a user by email.
func (s *Storage) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUsers)
		if bucket == nil {
			return fmt.Errorf("users bucket not found")
		}

		data := bucket.Get([]byte(email))
		if data == nil {
			return storage.ErrUserNotFound
		}

		var err error
		user, err = unmarshalUser(data)
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateByEmail applies patch to the user with the given email and stamps
// UpdatedAt, returning the post-update record.
func (s *Storage) UpdateByEmail(ctx context.Context, email string, patch storage.UserPatch) (*models.User, error) {
	var updated *models.User

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUsers)
		if bucket == nil {
			return fmt.Errorf("users bucket not found")
		}

		data := bucket.Get([]byte(email))
		if data == nil {
			return storage.ErrUserNotFound
		}

		user, err := unmarshalUser(data)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		user.FirstName = patch.FirstName
		user.UpdatedAt = &now

		out, err := marshalUser(user)
		if err != nil {
			return err
		}

		if err := bucket.Put([]byte(email), out); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// storedUser is the bucket representation. PasswordHash needs an explicit
// field here because models.User hides it from JSON.
type storedUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

func marshalUser(user *models.User) ([]byte, error) {
	data, err := json.Marshal(storedUser{User: *user, PasswordHash: user.PasswordHash})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}
	return data, nil
}

func unmarshalUser(data []byte) (*models.User, error) {
	var stored storedUser
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	user := stored.User
	user.PasswordHash = stored.PasswordHash
	return &user, nil
}
