package invoice

import (
	"context"

	"stockd/internal/core/id"
	"stockd/internal/domain"
)

// ListFilter contains filtering options for invoice lists.
type ListFilter struct {
	domain.Page

	SalesOrderID *id.ID
	Processed    *bool
}

// Repository defines SalesInvoice persistence.
type Repository interface {
	Create(ctx context.Context, inv *SalesInvoice) error
	GetByID(ctx context.Context, invoiceID id.ID) (*SalesInvoice, error)
	Update(ctx context.Context, inv *SalesInvoice) error
	Delete(ctx context.Context, invoiceID id.ID) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesInvoice], error)

	// GetForUpdate locks and returns the invoice row. Only valid
	// inside a transaction.
	GetForUpdate(ctx context.Context, invoiceID id.ID) (*SalesInvoice, error)

	// MarkProcessed sets only the processed flag of the locked row.
	MarkProcessed(ctx context.Context, invoiceID id.ID) error
}
