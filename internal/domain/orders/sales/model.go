// Package sales provides the SalesOrder aggregate.
// A sales order moves to INVOICED only when the reconciliation engine
// fulfills its invoice against available stock.
package sales

import (
	"context"
	"strings"
	"time"

	"stockd/internal/core/apperror"
	"stockd/internal/core/entity"
	"stockd/internal/core/id"
)

// Status is the lifecycle state of a sales order.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusInvoiced Status = "INVOICED"
	StatusFailed   Status = "FAILED"
)

// SalesOrder is a customer order awaiting fulfillment.
type SalesOrder struct {
	entity.Base

	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity ordered, in whole units
	Quantity int64 `db:"quantity" json:"quantity"`

	// Customer name
	Customer string `db:"customer" json:"customer"`

	// OrderDate is when the order was placed
	OrderDate time.Time `db:"order_date" json:"orderDate"`

	Status Status `db:"status" json:"status"`
}

// New creates a pending sales order.
func New(productID id.ID, quantity int64, customer string, orderDate time.Time) *SalesOrder {
	return &SalesOrder{
		Base:      entity.NewBase(),
		ProductID: productID,
		Quantity:  quantity,
		Customer:  customer,
		OrderDate: orderDate,
		Status:    StatusPending,
	}
}

// Validate implements entity.Validatable.
func (so *SalesOrder) Validate(ctx context.Context) error {
	if id.IsNil(so.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if so.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if strings.TrimSpace(so.Customer) == "" {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customer")
	}
	if so.OrderDate.IsZero() {
		return apperror.NewValidation("order date is required").
			WithDetail("field", "orderDate")
	}
	if !isValidStatus(so.Status) {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(so.Status))
	}
	return nil
}

// IsInvoiced reports whether the order has already been invoiced.
func (so *SalesOrder) IsInvoiced() bool {
	return so.Status == StatusInvoiced
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInvoiced, StatusFailed:
		return true
	}
	return false
}
