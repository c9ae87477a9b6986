// Package domain contains the core business entities for the PageKeep catalog.
package domain

import "time"

// Record provides the common fields shared by every stored document.
// It gets embedded in each domain type that lives in the store.
type Record struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
}

// Created returns the creation timestamp and ID, the pair used for
// deterministic ordering of list results.
func (r *Record) Created() (time.Time, string) {
	return r.CreatedAt, r.ID
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the underlying entity changes.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new entity.
func (r *Record) InitTimestamps() {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}
