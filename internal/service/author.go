// Package service contains the business logic between the HTTP layer and the store.
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

// AuthorService orchestrates author catalog operations.
type AuthorService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAuthorService creates a new author service.
func NewAuthorService(s *store.Store, v *validation.Validator, logger *slog.Logger) *AuthorService {
	return &AuthorService{
		store:     s,
		validator: v,
		logger:    logger,
	}
}

// CreateAuthorInput holds the fields for creating an author.
type CreateAuthorInput struct {
	Name  string `json:"name"  validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
}

// UpdateAuthorInput holds the fields for updating an author.
// Nil pointers leave the current value unchanged.
type UpdateAuthorInput struct {
	Name  *string `json:"name"  validate:"omitempty,min=1,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// Create creates a new author.
func (s *AuthorService) Create(ctx context.Context, in CreateAuthorInput) (*domain.Author, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	author := &domain.Author{
		Name:  in.Name,
		Email: in.Email,
	}
	author.ID = id.MustGenerate("aut")
	author.InitTimestamps()

	if err := s.store.Authors.Create(ctx, author.ID, author); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create author")
	}

	s.logger.Info("author created", "author_id", author.ID, "name", author.Name)
	return author, nil
}

// Get returns a single author by ID.
func (s *AuthorService) Get(ctx context.Context, authorID string) (*domain.Author, error) {
	author, err := s.store.Authors.Get(ctx, authorID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("author %s not found", authorID)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to get author")
	}
	return author, nil
}

// List returns a page of authors matching the query.
func (s *AuthorService) List(ctx context.Context, q store.AuthorQuery) (*store.Page[domain.Author], error) {
	page, err := s.store.ListAuthors(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to list authors")
	}
	return page, nil
}

// Update applies a partial update to an author.
func (s *AuthorService) Update(ctx context.Context, authorID string, in UpdateAuthorInput) (*domain.Author, error) {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if in.Email != nil {
		trimmed := strings.TrimSpace(*in.Email)
		in.Email = &trimmed
	}

	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	author, err := s.Get(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		author.Name = *in.Name
	}
	if in.Email != nil {
		author.Email = *in.Email
	}
	author.Touch()

	if err := s.store.Authors.Update(ctx, authorID, author); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to update author")
	}

	s.logger.Info("author updated", "author_id", authorID)
	return author, nil
}

// Delete removes an author. Deleting an author still referenced by a
// book is refused so the catalog never holds dangling references.
func (s *AuthorService) Delete(ctx context.Context, authorID string) error {
	if _, err := s.Get(ctx, authorID); err != nil {
		return err
	}

	referenced, err := s.store.HasBooksByAuthor(ctx, authorID)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to check author references")
	}
	if referenced {
		return errors.Conflictf("author %s is referenced by existing books", authorID)
	}

	if err := s.store.Authors.Delete(ctx, authorID); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to delete author")
	}

	s.logger.Info("author deleted", "author_id", authorID)
	return nil
}
