package dto

import (
	"github.com/shopspring/decimal"

	"stockd/internal/domain/catalogs/product"
)

// CreateProductRequest creates a product.
type CreateProductRequest struct {
	SKU         string          `json:"sku" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// UpdateProductRequest updates a product.
type UpdateProductRequest struct {
	SKU         string          `json:"sku" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Version     int             `json:"version" binding:"required"`
}

// ProductQuery filters product lists.
type ProductQuery struct {
	PageQuery

	Name   string `form:"name"`
	SKU    string `form:"sku"`
	Search string `form:"search"`
}

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Version     int             `json:"version"`
}

// ToProductResponse converts a domain product.
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.UnitPrice,
		Version:     p.Version,
	}
}
