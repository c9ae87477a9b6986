package store

import (
	"context"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

// AuthorQuery holds the filters for listing authors.
type AuthorQuery struct {
	// Q matches as a case-insensitive substring of the author name.
	Q    string
	Page PageParams
}

// ListAuthors returns a page of authors matching the query, ordered by
// creation time.
func (s *Store) ListAuthors(ctx context.Context, q AuthorQuery) (*Page[domain.Author], error) {
	q.Page.Clamp()

	all, err := s.Authors.Collect(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Author, 0, len(all))
	for _, a := range all {
		if !matchSubstring(a.Name, q.Q) {
			continue
		}
		matched = append(matched, a)
	}

	sortByCreated(matched)
	return paginate(matched, q.Page), nil
}

// HasBooksByAuthor reports whether any book references the author.
func (s *Store) HasBooksByAuthor(ctx context.Context, authorID string) (bool, error) {
	for book, err := range s.Books.List(ctx) {
		if err != nil {
			return false, err
		}
		if book.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}
