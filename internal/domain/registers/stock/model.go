// Package stock provides the stock level register.
// One row exists per (product, location) pair; quantity never goes
// negative as an effect of the reconciliation engine.
package stock

import (
	"context"
	"strings"

	"stockd/internal/core/apperror"
	"stockd/internal/core/entity"
	"stockd/internal/core/id"
)

// Stock is the quantity on hand for a product at a location.
type Stock struct {
	entity.Base

	ProductID id.ID `db:"product_id" json:"productId"`

	// Location is the warehouse location name
	Location string `db:"location" json:"location"`

	// Quantity on hand, in whole units
	Quantity int64 `db:"quantity" json:"quantity"`

	// ReorderLevel triggers replenishment reporting when reached
	ReorderLevel int64 `db:"reorder_level" json:"reorderLevel"`
}

// New creates a Stock row at zero quantity.
func New(productID id.ID, location string) *Stock {
	return &Stock{
		Base:         entity.NewBase(),
		ProductID:    productID,
		Location:     location,
		ReorderLevel: 10,
	}
}

// Validate implements entity.Validatable.
func (s *Stock) Validate(ctx context.Context) error {
	if id.IsNil(s.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if strings.TrimSpace(s.Location) == "" {
		return apperror.NewValidation("location is required").
			WithDetail("field", "location")
	}
	if s.Quantity < 0 {
		return apperror.NewValidation("quantity must not be negative").
			WithDetail("field", "quantity")
	}
	if s.ReorderLevel < 0 {
		return apperror.NewValidation("reorder level must not be negative").
			WithDetail("field", "reorderLevel")
	}
	return nil
}

// NeedsReorder reports whether quantity is at or below the reorder level.
func (s *Stock) NeedsReorder() bool {
	return s.Quantity <= s.ReorderLevel
}
