package transfer

import (
	"context"

	"stockd/internal/core/id"
	"stockd/internal/domain"
)

// ListFilter contains filtering options for transfer lists.
type ListFilter struct {
	domain.Page

	ProductID    *id.ID
	FromLocation string
	ToLocation   string
}

// Repository defines StockTransfer persistence.
type Repository interface {
	Create(ctx context.Context, t *StockTransfer) error
	GetByID(ctx context.Context, transferID id.ID) (*StockTransfer, error)
	Delete(ctx context.Context, transferID id.ID) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*StockTransfer], error)
}
