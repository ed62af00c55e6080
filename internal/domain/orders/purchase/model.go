// Package purchase provides the PurchaseOrder aggregate.
// Purchase orders are created by the purchasing workflow; their status
// is moved to RECEIVED only by the reconciliation engine once the
// goods received note is matched.
package purchase

import (
	"context"
	"strings"
	"time"

	"stockd/internal/core/apperror"
	"stockd/internal/core/entity"
	"stockd/internal/core/id"
)

// Status is the lifecycle state of a purchase order.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusReceived Status = "RECEIVED"
	StatusFailed   Status = "FAILED"
)

// PurchaseOrder is an order placed with a supplier.
type PurchaseOrder struct {
	entity.Base

	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity ordered, in whole units
	Quantity int64 `db:"quantity" json:"quantity"`

	// Supplier name
	Supplier string `db:"supplier" json:"supplier"`

	// ExpectedDate is when delivery is expected
	ExpectedDate time.Time `db:"expected_date" json:"expectedDate"`

	Status Status `db:"status" json:"status"`
}

// New creates a pending purchase order.
func New(productID id.ID, quantity int64, supplier string, expectedDate time.Time) *PurchaseOrder {
	return &PurchaseOrder{
		Base:         entity.NewBase(),
		ProductID:    productID,
		Quantity:     quantity,
		Supplier:     supplier,
		ExpectedDate: expectedDate,
		Status:       StatusPending,
	}
}

// Validate implements entity.Validatable.
func (po *PurchaseOrder) Validate(ctx context.Context) error {
	if id.IsNil(po.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if po.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if strings.TrimSpace(po.Supplier) == "" {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplier")
	}
	if po.ExpectedDate.IsZero() {
		return apperror.NewValidation("expected date is required").
			WithDetail("field", "expectedDate")
	}
	if !isValidStatus(po.Status) {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(po.Status))
	}
	return nil
}

// IsReceived reports whether the order has already been received.
func (po *PurchaseOrder) IsReceived() bool {
	return po.Status == StatusReceived
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusReceived, StatusFailed:
		return true
	}
	return false
}
