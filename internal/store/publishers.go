package store

import (
	"context"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

// PublisherQuery holds the filters for listing publishers.
type PublisherQuery struct {
	// Q matches as a case-insensitive substring of the publisher name.
	Q string
	// City matches as a case-insensitive substring of the city.
	City string
	Page PageParams
}

// ListPublishers returns a page of publishers matching the query,
// ordered by creation time.
func (s *Store) ListPublishers(ctx context.Context, q PublisherQuery) (*Page[domain.Publisher], error) {
	q.Page.Clamp()

	all, err := s.Publishers.Collect(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Publisher, 0, len(all))
	for _, p := range all {
		if !matchSubstring(p.Name, q.Q) {
			continue
		}
		if !matchSubstring(p.City, q.City) {
			continue
		}
		matched = append(matched, p)
	}

	sortByCreated(matched)
	return paginate(matched, q.Page), nil
}

// HasBooksByPublisher reports whether any book references the publisher.
func (s *Store) HasBooksByPublisher(ctx context.Context, publisherID string) (bool, error) {
	for book, err := range s.Books.List(ctx) {
		if err != nil {
			return false, err
		}
		if book.PublisherID == publisherID {
			return true, nil
		}
	}
	return false, nil
}
