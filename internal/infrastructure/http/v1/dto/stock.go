package dto

import (
	"stockd/internal/domain/registers/stock"
)

// CreateStockRequest creates a stock row.
type CreateStockRequest struct {
	ProductID    string `json:"productId" binding:"required,uuid"`
	Location     string `json:"location" binding:"required"`
	Quantity     int64  `json:"quantity"`
	ReorderLevel int64  `json:"reorderLevel"`
}

// UpdateStockRequest updates a stock row.
type UpdateStockRequest struct {
	Location     string `json:"location" binding:"required"`
	Quantity     int64  `json:"quantity"`
	ReorderLevel int64  `json:"reorderLevel"`
	Version      int    `json:"version" binding:"required"`
}

// StockQuery filters stock lists.
type StockQuery struct {
	PageQuery

	ProductID    string `form:"product_id"`
	Location     string `form:"location"`
	Quantity     *int64 `form:"quantity"`
	BelowReorder bool   `form:"below_reorder"`
}

// StockResponse is the public view of a stock row.
type StockResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	Location     string `json:"location"`
	Quantity     int64  `json:"quantity"`
	ReorderLevel int64  `json:"reorderLevel"`
	NeedsReorder bool   `json:"needsReorder"`
	Version      int    `json:"version"`
}

// ToStockResponse converts a domain stock row.
func ToStockResponse(s *stock.Stock) StockResponse {
	return StockResponse{
		ID:           s.ID.String(),
		ProductID:    s.ProductID.String(),
		Location:     s.Location,
		Quantity:     s.Quantity,
		ReorderLevel: s.ReorderLevel,
		NeedsReorder: s.NeedsReorder(),
		Version:      s.Version,
	}
}
