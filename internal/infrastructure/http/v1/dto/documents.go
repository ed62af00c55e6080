package dto

import (
	"time"

	"stockd/internal/domain/documents/grn"
	"stockd/internal/domain/documents/invoice"
)

// CreateGRNRequest creates a goods received note.
type CreateGRNRequest struct {
	PurchaseOrderID  string    `json:"purchaseOrderId" binding:"required,uuid"`
	ReceivedQuantity int64     `json:"receivedQuantity" binding:"required,gt=0"`
	ReceivedDate     time.Time `json:"receivedDate" binding:"required"`
	Matched          bool      `json:"matched"`
}

// UpdateGRNRequest updates a goods received note.
type UpdateGRNRequest struct {
	ReceivedQuantity int64     `json:"receivedQuantity" binding:"required,gt=0"`
	ReceivedDate     time.Time `json:"receivedDate" binding:"required"`
	Matched          bool      `json:"matched"`
	Version          int       `json:"version" binding:"required"`
}

// GRNQuery filters note lists.
type GRNQuery struct {
	PageQuery

	PurchaseOrderID string `form:"purchase_order_id"`
	Matched         *bool  `form:"matched"`
	Processed       *bool  `form:"processed"`
}

// GRNResponse is the public view of a goods received note.
type GRNResponse struct {
	ID               string    `json:"id"`
	PurchaseOrderID  string    `json:"purchaseOrderId"`
	ReceivedQuantity int64     `json:"receivedQuantity"`
	ReceivedDate     time.Time `json:"receivedDate"`
	Matched          bool      `json:"matched"`
	Processed        bool      `json:"processed"`
	Version          int       `json:"version"`
}

// ToGRNResponse converts a domain note.
func ToGRNResponse(n *grn.GoodsReceivedNote) GRNResponse {
	return GRNResponse{
		ID:               n.ID.String(),
		PurchaseOrderID:  n.PurchaseOrderID.String(),
		ReceivedQuantity: n.ReceivedQuantity,
		ReceivedDate:     n.ReceivedDate,
		Matched:          n.Matched,
		Processed:        n.Processed,
		Version:          n.Version,
	}
}

// CreateInvoiceRequest creates a sales invoice.
type CreateInvoiceRequest struct {
	SalesOrderID string    `json:"salesOrderId" binding:"required,uuid"`
	Quantity     int64     `json:"quantity" binding:"required,gt=0"`
	InvoiceDate  time.Time `json:"invoiceDate" binding:"required"`
}

// UpdateInvoiceRequest updates a sales invoice.
type UpdateInvoiceRequest struct {
	Quantity    int64     `json:"quantity" binding:"required,gt=0"`
	InvoiceDate time.Time `json:"invoiceDate" binding:"required"`
	Version     int       `json:"version" binding:"required"`
}

// InvoiceQuery filters invoice lists.
type InvoiceQuery struct {
	PageQuery

	SalesOrderID string `form:"sales_order_id"`
	Processed    *bool  `form:"processed"`
}

// InvoiceResponse is the public view of a sales invoice.
type InvoiceResponse struct {
	ID           string    `json:"id"`
	SalesOrderID string    `json:"salesOrderId"`
	Quantity     int64     `json:"quantity"`
	InvoiceDate  time.Time `json:"invoiceDate"`
	Processed    bool      `json:"processed"`
	Version      int       `json:"version"`
}

// ToInvoiceResponse converts a domain invoice.
func ToInvoiceResponse(inv *invoice.SalesInvoice) InvoiceResponse {
	return InvoiceResponse{
		ID:           inv.ID.String(),
		SalesOrderID: inv.SalesOrderID.String(),
		Quantity:     inv.Quantity,
		InvoiceDate:  inv.InvoiceDate,
		Processed:    inv.Processed,
		Version:      inv.Version,
	}
}
