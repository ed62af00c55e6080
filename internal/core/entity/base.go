// Package entity provides base types shared by all persisted records.
package entity

import (
	"context"
	"time"

	"stockd/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants without database access.
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, an AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Base contains common fields for all persisted entities.
type Base struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// Audit timestamps
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBase creates a Base with a generated ID and current timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates UpdatedAt and increments the version.
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.Version++
}

// SetVersion updates the version number (used by repositories after sync).
func (b *Base) SetVersion(v int) {
	b.Version = v
}
