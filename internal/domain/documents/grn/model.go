// Package grn provides the goods received note document.
// A note records a delivery against a purchase order; once it is
// matched the reconciliation engine applies it to the stock register
// exactly once and flags it processed.
package grn

import (
	"context"
	"time"

	"stockd/internal/core/apperror"
	"stockd/internal/core/entity"
	"stockd/internal/core/id"
)

// GoodsReceivedNote records a delivery against a purchase order.
type GoodsReceivedNote struct {
	entity.Base

	PurchaseOrderID id.ID `db:"purchase_order_id" json:"purchaseOrderId"`

	// ReceivedQuantity is what actually arrived. It may exceed the
	// ordered quantity; over-receipt is accepted as delivered.
	ReceivedQuantity int64 `db:"received_quantity" json:"receivedQuantity"`

	// ReceivedDate is when the goods physically arrived
	ReceivedDate time.Time `db:"received_date" json:"receivedDate"`

	// Matched means the delivery was verified against the order
	Matched bool `db:"matched" json:"matched"`

	// Processed means the stock effect has been applied. Set once by
	// the reconciliation engine, never cleared.
	Processed bool `db:"processed" json:"processed"`
}

// New creates an unmatched, unprocessed note.
func New(purchaseOrderID id.ID, receivedQuantity int64, receivedDate time.Time) *GoodsReceivedNote {
	return &GoodsReceivedNote{
		Base:             entity.NewBase(),
		PurchaseOrderID:  purchaseOrderID,
		ReceivedQuantity: receivedQuantity,
		ReceivedDate:     receivedDate,
	}
}

// Validate implements entity.Validatable.
func (n *GoodsReceivedNote) Validate(ctx context.Context) error {
	if id.IsNil(n.PurchaseOrderID) {
		return apperror.NewValidation("purchase order is required").
			WithDetail("field", "purchaseOrderId")
	}
	if n.ReceivedQuantity <= 0 {
		return apperror.NewValidation("received quantity must be positive").
			WithDetail("field", "receivedQuantity")
	}
	if n.ReceivedDate.IsZero() {
		return apperror.NewValidation("received date is required").
			WithDetail("field", "receivedDate")
	}
	return nil
}
