package handlers

import (
	"github.com/gin-gonic/gin"

	"stockd/internal/core/id"
	"stockd/internal/domain/documents/invoice"
	"stockd/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler serves sales invoice endpoints. Creating an invoice
// triggers fulfillment; an insufficient stock position is returned as
// an error while the invoice itself is kept.
type InvoiceHandler struct {
	BaseHandler

	service *invoice.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// Create handles POST /sales-invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}
	soID, err := id.Parse(req.SalesOrderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	inv := invoice.New(soID, req.Quantity, req.InvoiceDate)
	if err := h.service.Create(c.Request.Context(), inv); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToInvoiceResponse(inv))
}

// Get handles GET /sales-invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToInvoiceResponse(inv))
}

// Update handles PUT /sales-invoices/:id.
func (h *InvoiceHandler) Update(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	inv.Quantity = req.Quantity
	inv.InvoiceDate = req.InvoiceDate
	inv.SetVersion(req.Version)

	if err := h.service.Update(c.Request.Context(), inv); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToInvoiceResponse(inv))
}

// Delete handles DELETE /sales-invoices/:id.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), invoiceID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Retry handles POST /sales-invoices/:id/retry, re-running
// fulfillment after a failure.
func (h *InvoiceHandler) Retry(c *gin.Context) {
	invoiceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	applied, err := h.service.Retry(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{
		"applied": applied,
		"invoice": dto.ToInvoiceResponse(inv),
	})
}

// List handles GET /sales-invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	var q dto.InvoiceQuery
	if !h.BindQuery(c, &q) {
		return
	}
	soID, ok := h.ParseOptionalID(c, q.SalesOrderID)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), invoice.ListFilter{
		Page:         h.Page(q.PageQuery),
		SalesOrderID: soID,
		Processed:    q.Processed,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.InvoiceResponse, 0, len(result.Items))
	for _, inv := range result.Items {
		items = append(items, dto.ToInvoiceResponse(inv))
	}
	h.OK(c, dto.ListResponse[dto.InvoiceResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
