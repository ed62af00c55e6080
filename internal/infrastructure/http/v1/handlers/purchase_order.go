package handlers

import (
	"github.com/gin-gonic/gin"

	"stockd/internal/core/id"
	"stockd/internal/domain/orders/purchase"
	"stockd/internal/infrastructure/http/v1/dto"
)

// PurchaseOrderHandler serves purchase order endpoints.
type PurchaseOrderHandler struct {
	BaseHandler

	service *purchase.Service
}

// NewPurchaseOrderHandler creates a new purchase order handler.
func NewPurchaseOrderHandler(service *purchase.Service) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{service: service}
}

// Create handles POST /purchase-orders.
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}
	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, err)
		return
	}

	po := purchase.New(productID, req.Quantity, req.Supplier, req.ExpectedDate)
	if err := h.service.Create(c.Request.Context(), po); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, po.ID.String())
}

// Get handles GET /purchase-orders/:id.
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	po, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToPurchaseOrderResponse(po))
}

// Update handles PUT /purchase-orders/:id.
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	po, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	po.Quantity = req.Quantity
	po.Supplier = req.Supplier
	po.ExpectedDate = req.ExpectedDate
	po.SetVersion(req.Version)

	if err := h.service.Update(c.Request.Context(), po); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToPurchaseOrderResponse(po))
}

// Delete handles DELETE /purchase-orders/:id.
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
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

// List handles GET /purchase-orders.
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var q dto.PurchaseOrderQuery
	if !h.BindQuery(c, &q) {
		return
	}
	productID, ok := h.ParseOptionalID(c, q.ProductID)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), purchase.ListFilter{
		Page:      h.Page(q.PageQuery),
		ProductID: productID,
		Supplier:  q.Supplier,
		Status:    purchase.Status(q.Status),
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.PurchaseOrderResponse, 0, len(result.Items))
	for _, po := range result.Items {
		items = append(items, dto.ToPurchaseOrderResponse(po))
	}
	h.OK(c, dto.ListResponse[dto.PurchaseOrderResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
