package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	"github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/id"
	"github.com/pagekeep/pagekeep-server/internal/store"
	"github.com/pagekeep/pagekeep-server/internal/tags"
	"github.com/pagekeep/pagekeep-server/internal/validation"
)

// BookService orchestrates book catalog operations, including the
// public rating workflow.
type BookService struct {
	store      *store.Store
	vocabulary *tags.Vocabulary
	validator  *validation.Validator
	logger     *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(s *store.Store, vocab *tags.Vocabulary, v *validation.Validator, logger *slog.Logger) *BookService {
	return &BookService{
		store:      s,
		vocabulary: vocab,
		validator:  v,
		logger:     logger,
	}
}

// CreateBookInput holds the fields for creating a book.
type CreateBookInput struct {
	Title       string   `json:"title"        validate:"required,max=300"`
	Year        *int     `json:"year"         validate:"omitempty,gte=0,lte=3000"`
	AuthorID    string   `json:"author_id"    validate:"required"`
	PublisherID string   `json:"publisher_id" validate:"required"`
	Tags        []string `json:"tags"`
}

// UpdateBookInput holds the fields for updating a book.
// Nil pointers leave the current value unchanged. The rating aggregate
// is never writable through updates.
type UpdateBookInput struct {
	Title       *string   `json:"title"        validate:"omitempty,min=1,max=300"`
	Year        *int      `json:"year"         validate:"omitempty,gte=0,lte=3000"`
	AuthorID    *string   `json:"author_id"    validate:"omitempty,min=1"`
	PublisherID *string   `json:"publisher_id" validate:"omitempty,min=1"`
	Tags        *[]string `json:"tags"`
}

// RateBookInput holds a public rating submission.
type RateBookInput struct {
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
	Name   string `json:"name"   validate:"omitempty,max=200"`
	Notes  string `json:"notes"  validate:"omitempty,max=2000"`
}

// Create creates a new book. The referenced author and publisher must
// exist; tags are filtered against the vocabulary.
func (s *BookService) Create(ctx context.Context, in CreateBookInput) (*domain.Book, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.AuthorID = strings.TrimSpace(in.AuthorID)
	in.PublisherID = strings.TrimSpace(in.PublisherID)

	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, in.AuthorID, in.PublisherID); err != nil {
		return nil, err
	}

	book := &domain.Book{
		Title:       in.Title,
		Year:        in.Year,
		AuthorID:    in.AuthorID,
		PublisherID: in.PublisherID,
		Tags:        s.vocabulary.Normalize(in.Tags),
	}
	book.ID = id.MustGenerate("book")
	book.InitTimestamps()

	if err := s.store.Books.Create(ctx, book.ID, book); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create book")
	}

	s.logger.Info("book created", "book_id", book.ID, "title", book.Title)
	return book, nil
}

// Get returns a single book by ID.
func (s *BookService) Get(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.Books.Get(ctx, bookID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("book %s not found", bookID)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to get book")
	}
	return book, nil
}

// List returns a page of books matching the query. Unknown filter tags
// are normalized away, widening rather than breaking the filter.
func (s *BookService) List(ctx context.Context, q store.BookQuery) (*store.Page[domain.Book], error) {
	q.Tags = s.vocabulary.Normalize(q.Tags)

	page, err := s.store.ListBooks(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to list books")
	}
	return page, nil
}

// Update applies a partial update to a book. Changed references are
// re-verified before the write.
func (s *BookService) Update(ctx context.Context, bookID string, in UpdateBookInput) (*domain.Book, error) {
	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		in.Title = &trimmed
	}

	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	book, err := s.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}

	authorID := book.AuthorID
	publisherID := book.PublisherID
	if in.AuthorID != nil {
		authorID = *in.AuthorID
	}
	if in.PublisherID != nil {
		publisherID = *in.PublisherID
	}
	if err := s.checkReferences(ctx, authorID, publisherID); err != nil {
		return nil, err
	}

	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.Year != nil {
		book.Year = in.Year
	}
	book.AuthorID = authorID
	book.PublisherID = publisherID
	if in.Tags != nil {
		book.Tags = s.vocabulary.Normalize(*in.Tags)
	}
	book.Touch()

	if err := s.store.Books.Update(ctx, bookID, book); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to update book")
	}

	s.logger.Info("book updated", "book_id", bookID)
	return book, nil
}

// Delete removes a book. Its borrow requests and rating history are
// kept as audit records.
func (s *BookService) Delete(ctx context.Context, bookID string) error {
	if _, err := s.Get(ctx, bookID); err != nil {
		return err
	}

	if err := s.store.Books.Delete(ctx, bookID); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to delete book")
	}

	s.logger.Info("book deleted", "book_id", bookID)
	return nil
}

// Rate records a public rating submission against a book and returns
// the book with its updated aggregate.
func (s *BookService) Rate(ctx context.Context, bookID string, in RateBookInput) (*domain.Book, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Notes = strings.TrimSpace(in.Notes)

	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		BookID: bookID,
		Rating: in.Rating,
		Name:   in.Name,
		Notes:  in.Notes,
	}
	rating.ID = id.MustGenerate("rat")
	rating.InitTimestamps()

	book, err := s.store.ApplyRating(ctx, bookID, rating)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("book %s not found", bookID)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to apply rating")
	}

	s.logger.Info("rating recorded",
		"book_id", bookID,
		"rating", in.Rating,
		"rating_count", book.RatingCount,
	)
	return book, nil
}

// ListRatings returns a page of individual rating submissions.
func (s *BookService) ListRatings(ctx context.Context, q store.RatingQuery) (*store.Page[domain.Rating], error) {
	page, err := s.store.ListRatings(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to list ratings")
	}
	return page, nil
}

// checkReferences verifies the author and publisher a book points at exist.
func (s *BookService) checkReferences(ctx context.Context, authorID, publisherID string) error {
	ok, err := s.store.Authors.Exists(ctx, authorID)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to check author")
	}
	if !ok {
		return errors.Validationf("author %s does not exist", authorID)
	}

	ok, err = s.store.Publishers.Exists(ctx, publisherID)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to check publisher")
	}
	if !ok {
		return errors.Validationf("publisher %s does not exist", publisherID)
	}
	return nil
}
