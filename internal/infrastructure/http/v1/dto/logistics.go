package dto

import (
	"time"

	"stockd/internal/domain/forecast"
	"stockd/internal/domain/logistics/dropship"
	"stockd/internal/domain/logistics/transfer"
)

// CreateTransferRequest creates and executes a stock transfer.
type CreateTransferRequest struct {
	ProductID    string `json:"productId" binding:"required,uuid"`
	FromLocation string `json:"fromLocation" binding:"required"`
	ToLocation   string `json:"toLocation" binding:"required"`
	Quantity     int64  `json:"quantity" binding:"required,gt=0"`
}

// TransferQuery filters transfer lists.
type TransferQuery struct {
	PageQuery

	ProductID    string `form:"product_id"`
	FromLocation string `form:"from_location"`
	ToLocation   string `form:"to_location"`
}

// TransferResponse is the public view of a stock transfer.
type TransferResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	FromLocation string    `json:"fromLocation"`
	ToLocation   string    `json:"toLocation"`
	Quantity     int64     `json:"quantity"`
	TransferDate time.Time `json:"transferDate"`
}

// ToTransferResponse converts a domain transfer.
func ToTransferResponse(t *transfer.StockTransfer) TransferResponse {
	return TransferResponse{
		ID:           t.ID.String(),
		ProductID:    t.ProductID.String(),
		FromLocation: t.FromLocation,
		ToLocation:   t.ToLocation,
		Quantity:     t.Quantity,
		TransferDate: t.TransferDate,
	}
}

// CreateDropShipmentRequest creates a drop shipment.
type CreateDropShipmentRequest struct {
	ProductID    string `json:"productId" binding:"required,uuid"`
	CustomerName string `json:"customerName" binding:"required"`
	Address      string `json:"address" binding:"required"`
}

// UpdateDropShipmentRequest updates a drop shipment.
type UpdateDropShipmentRequest struct {
	CustomerName string `json:"customerName" binding:"required"`
	Address      string `json:"address" binding:"required"`
	Version      int    `json:"version" binding:"required"`
}

// DropShipmentQuery filters drop shipment lists.
type DropShipmentQuery struct {
	PageQuery

	ProductID string `form:"product_id"`
	Shipped   *bool  `form:"shipped"`
}

// DropShipmentResponse is the public view of a drop shipment.
type DropShipmentResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	CustomerName string `json:"customerName"`
	Address      string `json:"address"`
	Shipped      bool   `json:"shipped"`
	Version      int    `json:"version"`
}

// ToDropShipmentResponse converts a domain drop shipment.
func ToDropShipmentResponse(d *dropship.DropShipment) DropShipmentResponse {
	return DropShipmentResponse{
		ID:           d.ID.String(),
		ProductID:    d.ProductID.String(),
		CustomerName: d.CustomerName,
		Address:      d.Address,
		Shipped:      d.Shipped,
		Version:      d.Version,
	}
}

// CreateForecastRequest creates a demand forecast.
type CreateForecastRequest struct {
	ProductID       string    `json:"productId" binding:"required,uuid"`
	Month           time.Time `json:"month" binding:"required"`
	PredictedDemand int64     `json:"predictedDemand" binding:"gte=0"`
}

// UpdateForecastRequest updates a demand forecast.
type UpdateForecastRequest struct {
	Month           time.Time `json:"month" binding:"required"`
	PredictedDemand int64     `json:"predictedDemand" binding:"gte=0"`
	Version         int       `json:"version" binding:"required"`
}

// ForecastQuery filters forecast lists.
type ForecastQuery struct {
	PageQuery

	ProductID string     `form:"product_id"`
	Month     *time.Time `form:"month" time_format:"2006-01-02"`
}

// ForecastResponse is the public view of a demand forecast.
type ForecastResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"productId"`
	Month           time.Time `json:"month"`
	PredictedDemand int64     `json:"predictedDemand"`
	Version         int       `json:"version"`
}

// ToForecastResponse converts a domain forecast.
func ToForecastResponse(f *forecast.DemandForecast) ForecastResponse {
	return ForecastResponse{
		ID:              f.ID.String(),
		ProductID:       f.ProductID.String(),
		Month:           f.Month,
		PredictedDemand: f.PredictedDemand,
		Version:         f.Version,
	}
}
