// Package store keeps the history of checked inputs in a bbolt database.
package store

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.pcomb.sh/pkg/errutil"
	"src.pcomb.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[store] ")

// ErrNoEntry is returned when a history entry doesn't exist.
var ErrNoEntry = errors.New("no such history entry")

var initDB = map[string](func(*bolt.Tx) error){}

// Store is the history database.
type Store struct {
	db *bolt.DB
}

// Open opens the database at path, creating it if it doesn't exist yet.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	logger.Println("opened", path)
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errutil.Multi(err, db.Close())
	}
	return &Store{db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
