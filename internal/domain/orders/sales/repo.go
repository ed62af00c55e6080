package sales

import (
	"context"

	"stockd/internal/core/id"
	"stockd/internal/domain"
)

// ListFilter contains filtering options for sales order lists.
type ListFilter struct {
	domain.Page

	ProductID *id.ID
	Customer  string
	Status    Status
}

// Repository defines SalesOrder persistence.
//
// GetForUpdate must acquire a row-level lock and is only valid inside
// a transaction.
type Repository interface {
	Create(ctx context.Context, so *SalesOrder) error
	GetByID(ctx context.Context, orderID id.ID) (*SalesOrder, error)
	Update(ctx context.Context, so *SalesOrder) error
	Delete(ctx context.Context, orderID id.ID) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesOrder], error)

	// GetForUpdate locks and returns the order row.
	GetForUpdate(ctx context.Context, orderID id.ID) (*SalesOrder, error)

	// SetStatus updates only the status column of the locked row.
	SetStatus(ctx context.Context, orderID id.ID, status Status) error
}
