package domain

// Publisher represents a catalog publisher.
type Publisher struct {
	Record
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}
