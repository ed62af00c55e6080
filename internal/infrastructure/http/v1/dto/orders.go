package dto

import (
	"time"

	"stockd/internal/domain/orders/purchase"
	"stockd/internal/domain/orders/sales"
)

// CreatePurchaseOrderRequest creates a purchase order.
type CreatePurchaseOrderRequest struct {
	ProductID    string    `json:"productId" binding:"required,uuid"`
	Quantity     int64     `json:"quantity" binding:"required,gt=0"`
	Supplier     string    `json:"supplier" binding:"required"`
	ExpectedDate time.Time `json:"expectedDate" binding:"required"`
}

// UpdatePurchaseOrderRequest updates a purchase order.
type UpdatePurchaseOrderRequest struct {
	Quantity     int64     `json:"quantity" binding:"required,gt=0"`
	Supplier     string    `json:"supplier" binding:"required"`
	ExpectedDate time.Time `json:"expectedDate" binding:"required"`
	Version      int       `json:"version" binding:"required"`
}

// PurchaseOrderQuery filters purchase order lists.
type PurchaseOrderQuery struct {
	PageQuery

	ProductID string `form:"product_id"`
	Supplier  string `form:"supplier"`
	Status    string `form:"status"`
}

// PurchaseOrderResponse is the public view of a purchase order.
type PurchaseOrderResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	Quantity     int64     `json:"quantity"`
	Supplier     string    `json:"supplier"`
	ExpectedDate time.Time `json:"expectedDate"`
	Status       string    `json:"status"`
	Version      int       `json:"version"`
}

// ToPurchaseOrderResponse converts a domain purchase order.
func ToPurchaseOrderResponse(po *purchase.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:           po.ID.String(),
		ProductID:    po.ProductID.String(),
		Quantity:     po.Quantity,
		Supplier:     po.Supplier,
		ExpectedDate: po.ExpectedDate,
		Status:       string(po.Status),
		Version:      po.Version,
	}
}

// CreateSalesOrderRequest creates a sales order.
type CreateSalesOrderRequest struct {
	ProductID string    `json:"productId" binding:"required,uuid"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
	Customer  string    `json:"customer" binding:"required"`
	OrderDate time.Time `json:"orderDate" binding:"required"`
}

// UpdateSalesOrderRequest updates a sales order.
type UpdateSalesOrderRequest struct {
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
	Customer  string    `json:"customer" binding:"required"`
	OrderDate time.Time `json:"orderDate" binding:"required"`
	Version   int       `json:"version" binding:"required"`
}

// SalesOrderQuery filters sales order lists.
type SalesOrderQuery struct {
	PageQuery

	ProductID string `form:"product_id"`
	Customer  string `form:"customer"`
	Status    string `form:"status"`
}

// SalesOrderResponse is the public view of a sales order.
type SalesOrderResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int64     `json:"quantity"`
	Customer  string    `json:"customer"`
	OrderDate time.Time `json:"orderDate"`
	Status    string    `json:"status"`
	Version   int       `json:"version"`
}

// ToSalesOrderResponse converts a domain sales order.
func ToSalesOrderResponse(so *sales.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		ID:        so.ID.String(),
		ProductID: so.ProductID.String(),
		Quantity:  so.Quantity,
		Customer:  so.Customer,
		OrderDate: so.OrderDate,
		Status:    string(so.Status),
		Version:   so.Version,
	}
}
