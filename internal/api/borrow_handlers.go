package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	"github.com/pagekeep/pagekeep-server/internal/service"
)

func (s *Server) registerBorrowRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "submit-borrow-request",
		Method:        http.MethodPost,
		Path:          "/api/books/{id}/borrow",
		Summary:       "Submit borrow request",
		Description:   "Public endpoint. Records a borrow request for the given book.",
		Tags:          []string{"Borrows"},
		DefaultStatus: http.StatusCreated,
	}, s.handleSubmitBorrow)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-borrow-requests",
		Method:      http.MethodGet,
		Path:        "/api/borrows",
		Summary:     "List borrow requests",
		Description: "Returns a page of borrow requests, newest first.",
		Tags:        []string{"Borrows"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListBorrows)
}

// === DTOs ===

// SubmitBorrowRequest is the request body for a public borrow request.
type SubmitBorrowRequest struct {
	Name  string `json:"name" doc:"Requester name"`
	Email string `json:"email" doc:"Requester email"`
	Notes string `json:"notes,omitempty" doc:"Free-form notes"`
}

// SubmitBorrowInput wraps SubmitBorrowRequest for huma.
type SubmitBorrowInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body SubmitBorrowRequest
}

// BorrowResponse is the wire representation of a borrow request.
type BorrowResponse struct {
	ID        string    `json:"id" doc:"Borrow request ID"`
	BookID    string    `json:"book_id" doc:"Requested book ID"`
	BookTitle string    `json:"book_title" doc:"Book title at submission time"`
	Name      string    `json:"name" doc:"Requester name"`
	Email     string    `json:"email" doc:"Requester email"`
	Notes     string    `json:"notes,omitempty" doc:"Free-form notes"`
	Status    string    `json:"status" doc:"Request status"`
	CreatedAt time.Time `json:"created_at"`
}

// BorrowOutput wraps a single borrow request for huma.
type BorrowOutput struct {
	Body BorrowResponse
}

// ListBorrowsInput holds query parameters for listing borrow requests.
type ListBorrowsInput struct {
	PageQuery
}

// ListBorrowsOutput wraps a page of borrow requests for huma.
type ListBorrowsOutput struct {
	Body PageResponse[BorrowResponse]
}

// === Handlers ===

func (s *Server) handleSubmitBorrow(ctx context.Context, input *SubmitBorrowInput) (*BorrowOutput, error) {
	borrow, err := s.services.Borrow.Submit(ctx, input.ID, service.SubmitBorrowInput{
		Name:  input.Body.Name,
		Email: input.Body.Email,
		Notes: input.Body.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &BorrowOutput{Body: mapBorrow(borrow)}, nil
}

func (s *Server) handleListBorrows(ctx context.Context, input *ListBorrowsInput) (*ListBorrowsOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	page, err := s.services.Borrow.List(ctx, input.PageParams())
	if err != nil {
		return nil, err
	}

	return &ListBorrowsOutput{Body: mapPage(page, mapBorrow)}, nil
}

// === Mappers ===

func mapBorrow(borrow *domain.BorrowRequest) BorrowResponse {
	return BorrowResponse{
		ID:        borrow.ID,
		BookID:    borrow.BookID,
		BookTitle: borrow.BookTitle,
		Name:      borrow.Name,
		Email:     borrow.Email,
		Notes:     borrow.Notes,
		Status:    borrow.Status,
		CreatedAt: borrow.CreatedAt,
	}
}
