package store

import (
	"context"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

// ListBorrows returns a page of borrow requests, newest first so the
// admin sees fresh requests at the top.
func (s *Store) ListBorrows(ctx context.Context, p PageParams) (*Page[domain.BorrowRequest], error) {
	p.Clamp()

	all, err := s.Borrows.Collect(ctx)
	if err != nil {
		return nil, err
	}

	sortByCreatedDesc(all)
	return paginate(all, p), nil
}
