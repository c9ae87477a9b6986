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

// PublisherService orchestrates publisher catalog operations.
type PublisherService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPublisherService creates a new publisher service.
func NewPublisherService(s *store.Store, v *validation.Validator, logger *slog.Logger) *PublisherService {
	return &PublisherService{
		store:     s,
		validator: v,
		logger:    logger,
	}
}

// CreatePublisherInput holds the fields for creating a publisher.
type CreatePublisherInput struct {
	Name string `json:"name" validate:"required,max=200"`
	City string `json:"city" validate:"omitempty,max=200"`
}

// UpdatePublisherInput holds the fields for updating a publisher.
// Nil pointers leave the current value unchanged.
type UpdatePublisherInput struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
	City *string `json:"city" validate:"omitempty,max=200"`
}

// Create creates a new publisher.
func (s *PublisherService) Create(ctx context.Context, in CreatePublisherInput) (*domain.Publisher, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.City = strings.TrimSpace(in.City)

	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	publisher := &domain.Publisher{
		Name: in.Name,
		City: in.City,
	}
	publisher.ID = id.MustGenerate("pub")
	publisher.InitTimestamps()

	if err := s.store.Publishers.Create(ctx, publisher.ID, publisher); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create publisher")
	}

	s.logger.Info("publisher created", "publisher_id", publisher.ID, "name", publisher.Name)
	return publisher, nil
}

// Get returns a single publisher by ID.
func (s *PublisherService) Get(ctx context.Context, publisherID string) (*domain.Publisher, error) {
	publisher, err := s.store.Publishers.Get(ctx, publisherID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("publisher %s not found", publisherID)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to get publisher")
	}
	return publisher, nil
}

// List returns a page of publishers matching the query.
func (s *PublisherService) List(ctx context.Context, q store.PublisherQuery) (*store.Page[domain.Publisher], error) {
	page, err := s.store.ListPublishers(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to list publishers")
	}
	return page, nil
}

// Update applies a partial update to a publisher.
func (s *PublisherService) Update(ctx context.Context, publisherID string, in UpdatePublisherInput) (*domain.Publisher, error) {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if in.City != nil {
		trimmed := strings.TrimSpace(*in.City)
		in.City = &trimmed
	}

	if err := s.validator.Validate(&in); err != nil {
		return nil, err
	}

	publisher, err := s.Get(ctx, publisherID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		publisher.Name = *in.Name
	}
	if in.City != nil {
		publisher.City = *in.City
	}
	publisher.Touch()

	if err := s.store.Publishers.Update(ctx, publisherID, publisher); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to update publisher")
	}

	s.logger.Info("publisher updated", "publisher_id", publisherID)
	return publisher, nil
}

// Delete removes a publisher. Deleting a publisher still referenced by
// a book is refused so the catalog never holds dangling references.
func (s *PublisherService) Delete(ctx context.Context, publisherID string) error {
	if _, err := s.Get(ctx, publisherID); err != nil {
		return err
	}

	referenced, err := s.store.HasBooksByPublisher(ctx, publisherID)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to check publisher references")
	}
	if referenced {
		return errors.Conflictf("publisher %s is referenced by existing books", publisherID)
	}

	if err := s.store.Publishers.Delete(ctx, publisherID); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to delete publisher")
	}

	s.logger.Info("publisher deleted", "publisher_id", publisherID)
	return nil
}
