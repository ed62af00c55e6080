package stock

import (
	"context"

	"stockd/internal/core/id"
	"stockd/internal/domain"
)

// ListFilter contains filtering options for stock lists.
type ListFilter struct {
	domain.Page

	ProductID *id.ID
	Location  string
	Quantity  *int64

	// BelowReorder selects rows at or below their reorder level
	BelowReorder bool
}

// Repository defines Stock persistence.
//
// GetForUpdate and GetOrCreateForUpdate must acquire a row-level lock
// (SELECT ... FOR UPDATE or equivalent) so concurrent transitions on
// the same (product, location) serialize and lost updates are
// impossible. Both are only valid inside a transaction.
type Repository interface {
	Create(ctx context.Context, s *Stock) error
	GetByID(ctx context.Context, stockID id.ID) (*Stock, error)
	GetByProductLocation(ctx context.Context, productID id.ID, location string) (*Stock, error)
	Update(ctx context.Context, s *Stock) error
	Delete(ctx context.Context, stockID id.ID) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Stock], error)

	// GetForUpdate locks and returns the row for (product, location).
	// Returns NotFound when no row exists.
	GetForUpdate(ctx context.Context, productID id.ID, location string) (*Stock, error)

	// GetOrCreateForUpdate locks and returns the row for
	// (product, location), inserting one at zero quantity first when
	// missing.
	GetOrCreateForUpdate(ctx context.Context, productID id.ID, location string) (*Stock, error)

	// AdjustQuantity applies a signed delta to the locked row.
	AdjustQuantity(ctx context.Context, stockID id.ID, delta int64) error
}
