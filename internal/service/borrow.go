package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	"github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/id"
	"github.com/pagekeep/pagekeep-server/internal/store"
	"github.com/pagekeep/pagekeep-server/internal/validation"
)

// BorrowService handles public borrow requests and their admin review list.
type BorrowService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBorrowService creates a new borrow service.
func NewBorrowService(s *store.Store, v *validation.Validator, logger *slog.Logger) *BorrowService {
	return &BorrowService{
		store:     s,
		validator: v,
		logger:    logger,
	}
}

// SubmitBorrowInput holds a public borrow request submission.
type SubmitBorrowInput struct {
	Name  string `json:"name"  validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
	Notes string `json:"notes" validate:"omitempty,max=2000"`
}

// Submit records a borrow request against a book. The book title is
// snapshotted so the request survives later catalog edits.
func (s *BorrowService) Submit(ctx context.Context, bookID string, in SubmitBorrowInput) (*domain.BorrowRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Notes = strings.TrimSpace(in.Notes)

	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	book, err := s.store.Books.Get(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("book %s not found", bookID)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to get book")
	}

	request := &domain.BorrowRequest{
		BookID:    book.ID,
		BookTitle: book.Title,
		Name:      in.Name,
		Email:     in.Email,
		Notes:     in.Notes,
		Status:    domain.BorrowStatusPending,
	}
	request.ID = id.MustGenerate("brw")
	request.InitTimestamps()

	if err := s.store.Borrows.Create(ctx, request.ID, request); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create borrow request")
	}

	s.logger.Info("borrow request submitted",
		"borrow_id", request.ID,
		"book_id", book.ID,
	)
	return request, nil
}

// List returns a page of borrow requests, newest first.
func (s *BorrowService) List(ctx context.Context, p store.PageParams) (*store.Page[domain.BorrowRequest], error) {
	page, err := s.store.ListBorrows(ctx, p)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to list borrow requests")
	}
	return page, nil
}
