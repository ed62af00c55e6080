// Package transfer provides stock transfers between locations.
package transfer

import (
	"context"
	"strings"
	"time"

	"stockd/internal/core/apperror"
	"stockd/internal/core/entity"
	"stockd/internal/core/id"
)

// StockTransfer moves a quantity of a product between two locations.
type StockTransfer struct {
	entity.Base

	ProductID id.ID `db:"product_id" json:"productId"`

	FromLocation string `db:"from_location" json:"fromLocation"`
	ToLocation   string `db:"to_location" json:"toLocation"`

	// Quantity moved, in whole units
	Quantity int64 `db:"quantity" json:"quantity"`

	// TransferDate is when the move was recorded
	TransferDate time.Time `db:"transfer_date" json:"transferDate"`
}

// New creates a transfer dated now.
func New(productID id.ID, from, to string, quantity int64) *StockTransfer {
	return &StockTransfer{
		Base:         entity.NewBase(),
		ProductID:    productID,
		FromLocation: from,
		ToLocation:   to,
		Quantity:     quantity,
		TransferDate: time.Now().UTC(),
	}
}

// Validate implements entity.Validatable.
func (t *StockTransfer) Validate(ctx context.Context) error {
	if id.IsNil(t.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if strings.TrimSpace(t.FromLocation) == "" {
		return apperror.NewValidation("from location is required").
			WithDetail("field", "fromLocation")
	}
	if strings.TrimSpace(t.ToLocation) == "" {
		return apperror.NewValidation("to location is required").
			WithDetail("field", "toLocation")
	}
	if strings.EqualFold(t.FromLocation, t.ToLocation) {
		return apperror.NewValidation("locations must differ").
			WithDetail("field", "toLocation")
	}
	if t.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	return nil
}
