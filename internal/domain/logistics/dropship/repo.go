package dropship

import (
	"context"

	"stockd/internal/core/id"
	"stockd/internal/domain"
)

// ListFilter contains filtering options for drop shipment lists.
type ListFilter struct {
	domain.Page

	ProductID *id.ID
	Shipped   *bool
}

// Repository defines DropShipment persistence.
type Repository interface {
	Create(ctx context.Context, d *DropShipment) error
	GetByID(ctx context.Context, shipmentID id.ID) (*DropShipment, error)
	Update(ctx context.Context, d *DropShipment) error
	Delete(ctx context.Context, shipmentID id.ID) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*DropShipment], error)
}
