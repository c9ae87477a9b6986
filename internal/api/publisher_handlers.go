package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	"github.com/pagekeep/pagekeep-server/internal/service"
	"github.com/pagekeep/pagekeep-server/internal/store"
)

func (s *Server) registerPublisherRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-publishers",
		Method:      http.MethodGet,
		Path:        "/api/pubs",
		Summary:     "List publishers",
		Description: "Returns a page of publishers, oldest first. Supports name and city filters.",
		Tags:        []string{"Publishers"},
	}, s.handleListPublishers)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-publisher",
		Method:      http.MethodGet,
		Path:        "/api/pubs/{id}",
		Summary:     "Get publisher",
		Tags:        []string{"Publishers"},
	}, s.handleGetPublisher)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-publisher",
		Method:        http.MethodPost,
		Path:          "/api/pubs",
		Summary:       "Create publisher",
		Tags:          []string{"Publishers"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreatePublisher)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-publisher",
		Method:      http.MethodPut,
		Path:        "/api/pubs/{id}",
		Summary:     "Update publisher",
		Description: "Partial update; omitted fields keep their current values.",
		Tags:        []string{"Publishers"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePublisher)

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-publisher",
		Method:        http.MethodDelete,
		Path:          "/api/pubs/{id}",
		Summary:       "Delete publisher",
		Description:   "Fails with a conflict while any book references the publisher.",
		Tags:          []string{"Publishers"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeletePublisher)
}

// === DTOs ===

// PublisherResponse is the wire representation of a publisher.
type PublisherResponse struct {
	ID        string    `json:"id" doc:"Publisher ID"`
	Name      string    `json:"name" doc:"Publisher name"`
	City      string    `json:"city,omitempty" doc:"Home city"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListPublishersInput holds query parameters for listing publishers.
type ListPublishersInput struct {
	Q    string `query:"q" doc:"Case-insensitive name substring filter"`
	City string `query:"city" doc:"Case-insensitive city substring filter"`
	PageQuery
}

// ListPublishersOutput wraps a page of publishers for huma.
type ListPublishersOutput struct {
	Body PageResponse[PublisherResponse]
}

// PublisherIDInput identifies a publisher by path parameter.
type PublisherIDInput struct {
	ID string `path:"id" doc:"Publisher ID"`
}

// PublisherOutput wraps a single publisher for huma.
type PublisherOutput struct {
	Body PublisherResponse
}

// CreatePublisherRequest is the request body for creating a publisher.
type CreatePublisherRequest struct {
	Name string `json:"name" doc:"Publisher name"`
	City string `json:"city,omitempty" doc:"Home city"`
}

// CreatePublisherInput wraps CreatePublisherRequest for huma.
type CreatePublisherInput struct {
	Body CreatePublisherRequest
}

// UpdatePublisherRequest is the request body for updating a publisher.
// Omitted fields keep their current values.
type UpdatePublisherRequest struct {
	Name *string `json:"name,omitempty" doc:"Publisher name"`
	City *string `json:"city,omitempty" doc:"Home city"`
}

// UpdatePublisherInput wraps UpdatePublisherRequest for huma.
type UpdatePublisherInput struct {
	ID   string `path:"id" doc:"Publisher ID"`
	Body UpdatePublisherRequest
}

// === Handlers ===

func (s *Server) handleListPublishers(ctx context.Context, input *ListPublishersInput) (*ListPublishersOutput, error) {
	page, err := s.services.Publisher.List(ctx, store.PublisherQuery{
		Q:    input.Q,
		City: input.City,
		Page: input.PageParams(),
	})
	if err != nil {
		return nil, err
	}

	return &ListPublishersOutput{Body: mapPage(page, mapPublisher)}, nil
}

func (s *Server) handleGetPublisher(ctx context.Context, input *PublisherIDInput) (*PublisherOutput, error) {
	publisher, err := s.services.Publisher.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &PublisherOutput{Body: mapPublisher(publisher)}, nil
}

func (s *Server) handleCreatePublisher(ctx context.Context, input *CreatePublisherInput) (*PublisherOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	publisher, err := s.services.Publisher.Create(ctx, service.CreatePublisherInput{
		Name: input.Body.Name,
		City: input.Body.City,
	})
	if err != nil {
		return nil, err
	}

	return &PublisherOutput{Body: mapPublisher(publisher)}, nil
}

func (s *Server) handleUpdatePublisher(ctx context.Context, input *UpdatePublisherInput) (*PublisherOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	publisher, err := s.services.Publisher.Update(ctx, input.ID, service.UpdatePublisherInput{
		Name: input.Body.Name,
		City: input.Body.City,
	})
	if err != nil {
		return nil, err
	}

	return &PublisherOutput{Body: mapPublisher(publisher)}, nil
}

func (s *Server) handleDeletePublisher(ctx context.Context, input *PublisherIDInput) (*DeleteOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Publisher.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{}, nil
}

// === Mappers ===

func mapPublisher(publisher *domain.Publisher) PublisherResponse {
	return PublisherResponse{
		ID:        publisher.ID,
		Name:      publisher.Name,
		City:      publisher.City,
		CreatedAt: publisher.CreatedAt,
		UpdatedAt: publisher.UpdatedAt,
	}
}
