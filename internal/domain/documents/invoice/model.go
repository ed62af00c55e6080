// Package invoice provides the sales invoice document.
// Issuing an invoice asks the reconciliation engine to fulfill the
// sales order from available stock; a fulfilled invoice is flagged
// processed and never applied again.
package invoice

import (
	"context"
	"time"

	"stockd/internal/core/apperror"
	"stockd/internal/core/entity"
	"stockd/internal/core/id"
)

// SalesInvoice is the billing document for a sales order.
type SalesInvoice struct {
	entity.Base

	SalesOrderID id.ID `db:"sales_order_id" json:"salesOrderId"`

	// Quantity billed. Fulfillment deducts the order's quantity, not
	// this one; the invoiced figure is kept for the record.
	Quantity int64 `db:"quantity" json:"quantity"`

	// InvoiceDate is when the invoice was issued
	InvoiceDate time.Time `db:"invoice_date" json:"invoiceDate"`

	// Processed means stock was deducted and the order invoiced. Set
	// once by the reconciliation engine, never cleared.
	Processed bool `db:"processed" json:"processed"`
}

// New creates an unprocessed invoice.
func New(salesOrderID id.ID, quantity int64, invoiceDate time.Time) *SalesInvoice {
	return &SalesInvoice{
		Base:         entity.NewBase(),
		SalesOrderID: salesOrderID,
		Quantity:     quantity,
		InvoiceDate:  invoiceDate,
	}
}

// Validate implements entity.Validatable.
func (inv *SalesInvoice) Validate(ctx context.Context) error {
	if id.IsNil(inv.SalesOrderID) {
		return apperror.NewValidation("sales order is required").
			WithDetail("field", "salesOrderId")
	}
	if inv.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if inv.InvoiceDate.IsZero() {
		return apperror.NewValidation("invoice date is required").
			WithDetail("field", "invoiceDate")
	}
	return nil
}
