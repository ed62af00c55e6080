package purchase

import (
	"context"

	"stockd/internal/core/id"
	"stockd/internal/domain"
)

// ListFilter contains filtering options for purchase order lists.
type ListFilter struct {
	domain.Page

	ProductID *id.ID
	Supplier  string
	Status    Status
}

// Repository defines PurchaseOrder persistence.
//
// GetForUpdate must acquire a row-level lock and is only valid inside
// a transaction; the reconciliation engine uses it to serialize the
// status transition with the stock adjustment.
type Repository interface {
	Create(ctx context.Context, po *PurchaseOrder) error
	GetByID(ctx context.Context, orderID id.ID) (*PurchaseOrder, error)
	Update(ctx context.Context, po *PurchaseOrder) error
	Delete(ctx context.Context, orderID id.ID) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseOrder], error)

	// GetForUpdate locks and returns the order row.
	GetForUpdate(ctx context.Context, orderID id.ID) (*PurchaseOrder, error)

	// SetStatus updates only the status column of the locked row.
	SetStatus(ctx context.Context, orderID id.ID, status Status) error
}
