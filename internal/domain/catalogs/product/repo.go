package product

import (
	"context"

	"stockd/internal/core/id"
	"stockd/internal/domain"
)

// ListFilter contains filtering options for product lists.
type ListFilter struct {
	domain.Page

	// Name filters by exact name
	Name string

	// SKU filters by exact SKU
	SKU string

	// Search matches name or SKU substrings
	Search string
}

// Repository defines Product persistence.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, productID id.ID) error
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Product], error)

	// ExistsBySKU checks SKU uniqueness before insert.
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// IsReferenced reports whether any purchase or sales order refers to
	// the product. Referenced products are immutable.
	IsReferenced(ctx context.Context, productID id.ID) (bool, error)
}
