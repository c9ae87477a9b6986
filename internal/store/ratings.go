package store

import (
	"context"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

// RatingQuery holds the filters for listing rating submissions.
type RatingQuery struct {
	// BookID restricts results to a single book when set.
	BookID string
	Page   PageParams
}

// ListRatings returns a page of rating submissions, newest first.
func (s *Store) ListRatings(ctx context.Context, q RatingQuery) (*Page[domain.Rating], error) {
	q.Page.Clamp()

	all, err := s.Ratings.Collect(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Rating, 0, len(all))
	for _, r := range all {
		if q.BookID != "" && r.BookID != q.BookID {
			continue
		}
		matched = append(matched, r)
	}

	sortByCreatedDesc(matched)
	return paginate(matched, q.Page), nil
}
