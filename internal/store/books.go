package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

// BookQuery holds the filters for listing books. All filters combine
// with AND semantics.
type BookQuery struct {
	// Q matches as a case-insensitive substring of the title.
	Q string
	// AuthorID and PublisherID match exactly.
	AuthorID    string
	PublisherID string
	// Tags must all be present on the book (subset match).
	Tags []string
	Page PageParams
}

// ListBooks returns a page of books matching the query, ordered by
// creation time.
func (s *Store) ListBooks(ctx context.Context, q BookQuery) (*Page[domain.Book], error) {
	q.Page.Clamp()

	all, err := s.Books.Collect(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Book, 0, len(all))
	for _, b := range all {
		if !matchSubstring(b.Title, q.Q) {
			continue
		}
		if q.AuthorID != "" && b.AuthorID != q.AuthorID {
			continue
		}
		if q.PublisherID != "" && b.PublisherID != q.PublisherID {
			continue
		}
		if !b.HasAllTags(q.Tags) {
			continue
		}
		matched = append(matched, b)
	}

	sortByCreated(matched)
	return paginate(matched, q.Page), nil
}

// ApplyRating folds a rating into the book's aggregate counters and
// persists the individual rating document in the same transaction.
// Badger's serializable snapshot isolation turns concurrent updates of
// the same book into ErrConflict at commit; the whole read-modify-write
// is retried so no submission is lost.
func (s *Store) ApplyRating(ctx context.Context, bookID string, rating *domain.Rating) (*domain.Book, error) {
	bookKey := []byte(prefixBook + bookID)
	ratingKey := []byte(prefixRating + rating.ID)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var book domain.Book
		err := s.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(bookKey)
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("failed to get book: %w", err)
			}

			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &book)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal book: %w", err)
			}

			book.AddRating(rating.Rating)
			book.Touch()

			bookData, err := json.Marshal(&book)
			if err != nil {
				return fmt.Errorf("failed to marshal book: %w", err)
			}
			ratingData, err := json.Marshal(rating)
			if err != nil {
				return fmt.Errorf("failed to marshal rating: %w", err)
			}

			if err := txn.Set(bookKey, bookData); err != nil {
				return fmt.Errorf("failed to set book: %w", err)
			}
			if err := txn.Set(ratingKey, ratingData); err != nil {
				return fmt.Errorf("failed to set rating: %w", err)
			}
			return nil
		})

		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &book, nil
	}
}
