package domain

// BorrowStatusPending is the initial (and currently only) status of a
// borrow request. The admin UI surfaces requests for manual follow-up;
// no further transitions are modeled.
const BorrowStatusPending = "pending"

// BorrowRequest is a public visitor's request to borrow a book.
// BookTitle is a snapshot of the book's title at request time so the
// request stays readable even if the book is later renamed or deleted.
type BorrowRequest struct {
	Record
	BookID    string `json:"book_id"`
	BookTitle string `json:"book_title"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status"`
}
