// Package store implements the document store for the catalog on top of Badger.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

// Key prefixes for each collection. IDs are appended directly, so a full
// key looks like "book:book-V1StGXR8_Z5jdHi6B-myT".
const (
	prefixAuthor    = "author:"
	prefixPublisher = "publisher:"
	prefixBook      = "book:"
	prefixBorrow    = "borrow:"
	prefixRating    = "rating:"
	prefixSession   = "session:"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Generic entities
	Authors    *Entity[domain.Author]
	Publishers *Entity[domain.Publisher]
	Books      *Entity[domain.Book]
	Borrows    *Entity[domain.BorrowRequest]
	Ratings    *Entity[domain.Rating]
	Sessions   *Entity[domain.Session]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	// Initialize generic entities
	store.Authors = NewEntity[domain.Author](store, prefixAuthor)
	store.Publishers = NewEntity[domain.Publisher](store, prefixPublisher)
	store.Books = NewEntity[domain.Book](store, prefixBook)
	store.Borrows = NewEntity[domain.BorrowRequest](store, prefixBorrow)
	store.Ratings = NewEntity[domain.Rating](store, prefixRating)
	store.Sessions = NewEntity[domain.Session](store, prefixSession)

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Ping verifies the database is readable. Used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte("ping"))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Helper methods for database operations.

// exists checks if a key exists.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
