// Package boltdb implements the users store on a single bbolt file.
// It is the zero-dependency deployment option; sqlite remains the default.
package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

// bucketUsers maps email -> JSON-encoded models.User. Keying the bucket by
// email makes the uniqueness invariant structural: a duplicate insert is a
// key collision inside one write transaction.
var bucketUsers = []byte("users")

// Storage is the bbolt-backed users store.
type Storage struct {
	db *bbolt.DB
}

// New opens (or creates) the bbolt database at dbPath.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets creates the required buckets if they do not exist yet.
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketUsers); err != nil {
			return fmt.Errorf("failed to create users bucket: %w", err)
		}
		return nil
	})
}
