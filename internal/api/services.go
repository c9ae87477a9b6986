package api

import (
	"github.com/pagekeep/pagekeep-server/internal/service"
)

// Services groups all services used by the API server.
type Services struct {
	Auth      *service.AuthService
	Author    *service.AuthorService
	Publisher *service.PublisherService
	Book      *service.BookService
	Borrow    *service.BorrowService
}
