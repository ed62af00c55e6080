// Package product provides the Product catalog.
// Products are the master records every order and stock row refers to.
package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"stockd/internal/core/apperror"
	"stockd/internal/core/entity"
)

// Product represents a sellable item identified by SKU.
type Product struct {
	entity.Base

	// SKU is the unique stock-keeping unit code
	SKU string `db:"sku" json:"sku"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Description is optional free text
	Description string `db:"description" json:"description,omitempty"`

	// UnitPrice is the list price per unit
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`
}

// New creates a Product with required fields.
func New(sku, name string, unitPrice decimal.Decimal) *Product {
	return &Product{
		Base:      entity.NewBase(),
		SKU:       sku,
		Name:      name,
		UnitPrice: unitPrice,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if strings.TrimSpace(p.SKU) == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}
	if p.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price must not be negative").
			WithDetail("field", "unitPrice")
	}
	return nil
}
