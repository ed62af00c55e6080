package grn

import (
	"context"

	"stockd/internal/core/id"
	"stockd/internal/domain"
)

// ListFilter contains filtering options for note lists.
type ListFilter struct {
	domain.Page

	PurchaseOrderID *id.ID
	Matched         *bool
	Processed       *bool
}

// Repository defines GoodsReceivedNote persistence.
type Repository interface {
	Create(ctx context.Context, n *GoodsReceivedNote) error
	GetByID(ctx context.Context, noteID id.ID) (*GoodsReceivedNote, error)
	Update(ctx context.Context, n *GoodsReceivedNote) error
	Delete(ctx context.Context, noteID id.ID) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*GoodsReceivedNote], error)

	// GetForUpdate locks and returns the note row. Only valid inside a
	// transaction.
	GetForUpdate(ctx context.Context, noteID id.ID) (*GoodsReceivedNote, error)

	// MarkProcessed sets only the processed flag of the locked row.
	MarkProcessed(ctx context.Context, noteID id.ID) error
}
