package handlers

import (
	"github.com/gin-gonic/gin"

	"stockd/internal/core/id"
	"stockd/internal/domain/orders/sales"
	"stockd/internal/infrastructure/http/v1/dto"
)

// SalesOrderHandler serves sales order endpoints.
type SalesOrderHandler struct {
	BaseHandler

	service *sales.Service
}

// NewSalesOrderHandler creates a new sales order handler.
func NewSalesOrderHandler(service *sales.Service) *SalesOrderHandler {
	return &SalesOrderHandler{service: service}
}

// Create handles POST /sales-orders.
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req dto.CreateSalesOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, err)
		return
	}

	so := sales.New(productID, req.Quantity, req.Customer, req.OrderDate)
	if err := h.service.Create(c.Request.Context(), so); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, so.ID.String())
}

// Get handles GET /sales-orders/:id.
func (h *SalesOrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	so, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToSalesOrderResponse(so))
}

// Update handles PUT /sales-orders/:id.
func (h *SalesOrderHandler) Update(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSalesOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	so, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	so.Quantity = req.Quantity
	so.Customer = req.Customer
	so.OrderDate = req.OrderDate
	so.SetVersion(req.Version)

	if err := h.service.Update(c.Request.Context(), so); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToSalesOrderResponse(so))
}

// Delete handles DELETE /sales-orders/:id.
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), orderID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /sales-orders.
func (h *SalesOrderHandler) List(c *gin.Context) {
	var q dto.SalesOrderQuery
	if !h.BindQuery(c, &q) {
		return
	}
	productID, ok := h.ParseOptionalID(c, q.ProductID)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), sales.ListFilter{
		Page:      h.Page(q.PageQuery),
		ProductID: productID,
		Customer:  q.Customer,
		Status:    sales.Status(q.Status),
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.SalesOrderResponse, 0, len(result.Items))
	for _, so := range result.Items {
		items = append(items, dto.ToSalesOrderResponse(so))
	}
	h.OK(c, dto.ListResponse[dto.SalesOrderResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
