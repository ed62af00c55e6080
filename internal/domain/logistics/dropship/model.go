// Package dropship provides drop shipments sent straight from the
// supplier to the customer, bypassing the stock register.
package dropship

import (
	"context"
	"strings"

	"stockd/internal/core/apperror"
	"stockd/internal/core/entity"
	"stockd/internal/core/id"
)

// DropShipment is a supplier-to-customer delivery.
type DropShipment struct {
	entity.Base

	ProductID id.ID `db:"product_id" json:"productId"`

	CustomerName string `db:"customer_name" json:"customerName"`
	Address      string `db:"address" json:"address"`

	// Shipped is set once the supplier confirms dispatch
	Shipped bool `db:"shipped" json:"shipped"`
}

// New creates an unshipped drop shipment.
func New(productID id.ID, customerName, address string) *DropShipment {
	return &DropShipment{
		Base:         entity.NewBase(),
		ProductID:    productID,
		CustomerName: customerName,
		Address:      address,
	}
}

// Validate implements entity.Validatable.
func (d *DropShipment) Validate(ctx context.Context) error {
	if id.IsNil(d.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if strings.TrimSpace(d.CustomerName) == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "customerName")
	}
	if strings.TrimSpace(d.Address) == "" {
		return apperror.NewValidation("address is required").
			WithDetail("field", "address")
	}
	return nil
}
