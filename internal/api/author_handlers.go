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

func (s *Server) registerAuthorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-authors",
		Method:      http.MethodGet,
		Path:        "/api/authors",
		Summary:     "List authors",
		Description: "Returns a page of authors, oldest first. Supports name substring search.",
		Tags:        []string{"Authors"},
	}, s.handleListAuthors)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-author",
		Method:      http.MethodGet,
		Path:        "/api/authors/{id}",
		Summary:     "Get author",
		Tags:        []string{"Authors"},
	}, s.handleGetAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-author",
		Method:        http.MethodPost,
		Path:          "/api/authors",
		Summary:       "Create author",
		Tags:          []string{"Authors"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-author",
		Method:      http.MethodPut,
		Path:        "/api/authors/{id}",
		Summary:     "Update author",
		Description: "Partial update; omitted fields keep their current values.",
		Tags:        []string{"Authors"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-author",
		Method:        http.MethodDelete,
		Path:          "/api/authors/{id}",
		Summary:       "Delete author",
		Description:   "Fails with a conflict while any book references the author.",
		Tags:          []string{"Authors"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteAuthor)
}

// === DTOs ===

// AuthorResponse is the wire representation of an author.
type AuthorResponse struct {
	ID        string    `json:"id" doc:"Author ID"`
	Name      string    `json:"name" doc:"Author name"`
	Email     string    `json:"email,omitempty" doc:"Contact email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListAuthorsInput holds query parameters for listing authors.
type ListAuthorsInput struct {
	Q string `query:"q" doc:"Case-insensitive name substring filter"`
	PageQuery
}

// ListAuthorsOutput wraps a page of authors for huma.
type ListAuthorsOutput struct {
	Body PageResponse[AuthorResponse]
}

// AuthorIDInput identifies an author by path parameter.
type AuthorIDInput struct {
	ID string `path:"id" doc:"Author ID"`
}

// AuthorOutput wraps a single author for huma.
type AuthorOutput struct {
	Body AuthorResponse
}

// CreateAuthorRequest is the request body for creating an author.
type CreateAuthorRequest struct {
	Name  string `json:"name" doc:"Author name"`
	Email string `json:"email,omitempty" doc:"Contact email"`
}

// CreateAuthorInput wraps CreateAuthorRequest for huma.
type CreateAuthorInput struct {
	Body CreateAuthorRequest
}

// UpdateAuthorRequest is the request body for updating an author.
// Omitted fields keep their current values.
type UpdateAuthorRequest struct {
	Name  *string `json:"name,omitempty" doc:"Author name"`
	Email *string `json:"email,omitempty" doc:"Contact email"`
}

// UpdateAuthorInput wraps UpdateAuthorRequest for huma.
type UpdateAuthorInput struct {
	ID   string `path:"id" doc:"Author ID"`
	Body UpdateAuthorRequest
}

// DeleteOutput is an empty-body response for deletes.
type DeleteOutput struct{}

// === Handlers ===

func (s *Server) handleListAuthors(ctx context.Context, input *ListAuthorsInput) (*ListAuthorsOutput, error) {
	page, err := s.services.Author.List(ctx, store.AuthorQuery{
		Q:    input.Q,
		Page: input.PageParams(),
	})
	if err != nil {
		return nil, err
	}

	return &ListAuthorsOutput{Body: mapPage(page, mapAuthor)}, nil
}

func (s *Server) handleGetAuthor(ctx context.Context, input *AuthorIDInput) (*AuthorOutput, error) {
	author, err := s.services.Author.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &AuthorOutput{Body: mapAuthor(author)}, nil
}

func (s *Server) handleCreateAuthor(ctx context.Context, input *CreateAuthorInput) (*AuthorOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	author, err := s.services.Author.Create(ctx, service.CreateAuthorInput{
		Name:  input.Body.Name,
		Email: input.Body.Email,
	})
	if err != nil {
		return nil, err
	}

	return &AuthorOutput{Body: mapAuthor(author)}, nil
}

func (s *Server) handleUpdateAuthor(ctx context.Context, input *UpdateAuthorInput) (*AuthorOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	author, err := s.services.Author.Update(ctx, input.ID, service.UpdateAuthorInput{
		Name:  input.Body.Name,
		Email: input.Body.Email,
	})
	if err != nil {
		return nil, err
	}

	return &AuthorOutput{Body: mapAuthor(author)}, nil
}

func (s *Server) handleDeleteAuthor(ctx context.Context, input *AuthorIDInput) (*DeleteOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Author.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{}, nil
}

// === Mappers ===

func mapAuthor(author *domain.Author) AuthorResponse {
	return AuthorResponse{
		ID:        author.ID,
		Name:      author.Name,
		Email:     author.Email,
		CreatedAt: author.CreatedAt,
		UpdatedAt: author.UpdatedAt,
	}
}
