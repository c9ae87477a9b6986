package domain

// Rating is an individual rating submission, kept as an audit record.
// The aggregate lives on the Book itself (RatingSum/RatingCount/
// RatingAvg); these documents are never read back to recompute it.
type Rating struct {
	Record
	BookID string `json:"book_id"`
	Rating int    `json:"rating"`
	Name   string `json:"name,omitempty"`
	Notes  string `json:"notes,omitempty"`
}
