package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	"github.com/pagekeep/pagekeep-server/internal/service"
	"github.com/pagekeep/pagekeep-server/internal/store"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-books",
		Method:      http.MethodGet,
		Path:        "/api/books",
		Summary:     "List books",
		Description: "Returns a page of books, oldest first. Filters combine with AND; unknown tags are ignored.",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-book",
		Method:      http.MethodGet,
		Path:        "/api/books/{id}",
		Summary:     "Get book",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-book",
		Method:        http.MethodPost,
		Path:          "/api/books",
		Summary:       "Create book",
		Description:   "The referenced author and publisher must already exist.",
		Tags:          []string{"Books"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-book",
		Method:      http.MethodPut,
		Path:        "/api/books/{id}",
		Summary:     "Update book",
		Description: "Partial update; omitted fields keep their current values.",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-book",
		Method:        http.MethodDelete,
		Path:          "/api/books/{id}",
		Summary:       "Delete book",
		Description:   "Borrow requests and ratings for the book are kept as history.",
		Tags:          []string{"Books"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID:   "rate-book",
		Method:        http.MethodPost,
		Path:          "/api/books/{id}/rate",
		Summary:       "Rate book",
		Description:   "Public endpoint. Records a 1-5 rating and returns the book's updated aggregate.",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
	}, s.handleRateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-ratings",
		Method:      http.MethodGet,
		Path:        "/api/ratings",
		Summary:     "List ratings",
		Description: "Returns a page of individual rating submissions, newest first.",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListRatings)
}

// === DTOs ===

// BookResponse is the wire representation of a book.
type BookResponse struct {
	ID          string    `json:"id" doc:"Book ID"`
	Title       string    `json:"title" doc:"Book title"`
	Year        *int      `json:"year,omitempty" doc:"Publication year"`
	AuthorID    string    `json:"author_id" doc:"Author ID"`
	PublisherID string    `json:"publisher_id" doc:"Publisher ID"`
	Tags        []string  `json:"tags" doc:"Catalog tags"`
	RatingCount int       `json:"rating_count" doc:"Number of ratings received"`
	RatingAvg   float64   `json:"rating_avg" doc:"Average rating, 0 when unrated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListBooksInput holds query parameters for listing books.
type ListBooksInput struct {
	Q           string `query:"q" doc:"Case-insensitive title substring filter"`
	AuthorID    string `query:"author_id" doc:"Exact author ID filter"`
	PublisherID string `query:"publisher_id" doc:"Exact publisher ID filter"`
	Tags        string `query:"tags" doc:"Comma-separated tags the book must all carry"`
	PageQuery
}

// ListBooksOutput wraps a page of books for huma.
type ListBooksOutput struct {
	Body PageResponse[BookResponse]
}

// BookIDInput identifies a book by path parameter.
type BookIDInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// BookOutput wraps a single book for huma.
type BookOutput struct {
	Body BookResponse
}

// CreateBookRequest is the request body for creating a book.
type CreateBookRequest struct {
	Title       string   `json:"title" doc:"Book title"`
	Year        *int     `json:"year,omitempty" doc:"Publication year"`
	AuthorID    string   `json:"author_id" doc:"Author ID"`
	PublisherID string   `json:"publisher_id" doc:"Publisher ID"`
	Tags        []string `json:"tags,omitempty" doc:"Catalog tags; unknown tags are dropped"`
}

// CreateBookInput wraps CreateBookRequest for huma.
type CreateBookInput struct {
	Body CreateBookRequest
}

// UpdateBookRequest is the request body for updating a book.
// Omitted fields keep their current values; tags, when present,
// replace the existing set.
type UpdateBookRequest struct {
	Title       *string   `json:"title,omitempty" doc:"Book title"`
	Year        *int      `json:"year,omitempty" doc:"Publication year"`
	AuthorID    *string   `json:"author_id,omitempty" doc:"Author ID"`
	PublisherID *string   `json:"publisher_id,omitempty" doc:"Publisher ID"`
	Tags        *[]string `json:"tags,omitempty" doc:"Replacement tag set"`
}

// UpdateBookInput wraps UpdateBookRequest for huma.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body UpdateBookRequest
}

// RateBookRequest is the request body for a public rating submission.
type RateBookRequest struct {
	Rating int    `json:"rating" doc:"Rating from 1 to 5"`
	Name   string `json:"name,omitempty" doc:"Submitter name"`
	Notes  string `json:"notes,omitempty" doc:"Free-form notes"`
}

// RateBookInput wraps RateBookRequest for huma.
type RateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body RateBookRequest
}

// RatingResponse is the wire representation of one rating submission.
type RatingResponse struct {
	ID        string    `json:"id" doc:"Rating ID"`
	BookID    string    `json:"book_id" doc:"Rated book ID"`
	Rating    int       `json:"rating" doc:"Rating from 1 to 5"`
	Name      string    `json:"name,omitempty" doc:"Submitter name"`
	Notes     string    `json:"notes,omitempty" doc:"Free-form notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ListRatingsInput holds query parameters for listing ratings.
type ListRatingsInput struct {
	BookID string `query:"book_id" doc:"Exact book ID filter"`
	PageQuery
}

// ListRatingsOutput wraps a page of ratings for huma.
type ListRatingsOutput struct {
	Body PageResponse[RatingResponse]
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	page, err := s.services.Book.List(ctx, store.BookQuery{
		Q:           input.Q,
		AuthorID:    input.AuthorID,
		PublisherID: input.PublisherID,
		Tags:        splitTags(input.Tags),
		Page:        input.PageParams(),
	})
	if err != nil {
		return nil, err
	}

	return &ListBooksOutput{Body: mapPage(page, mapBook)}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	book, err := s.services.Book.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBook(book)}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	book, err := s.services.Book.Create(ctx, service.CreateBookInput{
		Title:       input.Body.Title,
		Year:        input.Body.Year,
		AuthorID:    input.Body.AuthorID,
		PublisherID: input.Body.PublisherID,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBook(book)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	book, err := s.services.Book.Update(ctx, input.ID, service.UpdateBookInput{
		Title:       input.Body.Title,
		Year:        input.Body.Year,
		AuthorID:    input.Body.AuthorID,
		PublisherID: input.Body.PublisherID,
		Tags:        input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBook(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookIDInput) (*DeleteOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Book.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{}, nil
}

func (s *Server) handleRateBook(ctx context.Context, input *RateBookInput) (*BookOutput, error) {
	book, err := s.services.Book.Rate(ctx, input.ID, service.RateBookInput{
		Rating: input.Body.Rating,
		Name:   input.Body.Name,
		Notes:  input.Body.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBook(book)}, nil
}

func (s *Server) handleListRatings(ctx context.Context, input *ListRatingsInput) (*ListRatingsOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	page, err := s.services.Book.ListRatings(ctx, store.RatingQuery{
		BookID: input.BookID,
		Page:   input.PageParams(),
	})
	if err != nil {
		return nil, err
	}

	return &ListRatingsOutput{Body: mapPage(page, mapRating)}, nil
}

// splitTags parses a comma-separated tag filter, dropping empty entries.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// === Mappers ===

func mapBook(book *domain.Book) BookResponse {
	tags := book.Tags
	if tags == nil {
		tags = []string{}
	}
	return BookResponse{
		ID:          book.ID,
		Title:       book.Title,
		Year:        book.Year,
		AuthorID:    book.AuthorID,
		PublisherID: book.PublisherID,
		Tags:        tags,
		RatingCount: book.RatingCount,
		RatingAvg:   book.RatingAvg,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
}

func mapRating(rating *domain.Rating) RatingResponse {
	return RatingResponse{
		ID:        rating.ID,
		BookID:    rating.BookID,
		Rating:    rating.Rating,
		Name:      rating.Name,
		Notes:     rating.Notes,
		CreatedAt: rating.CreatedAt,
	}
}
