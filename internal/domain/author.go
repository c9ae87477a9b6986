package domain

// Author represents a catalog author.
type Author struct {
	Record
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
