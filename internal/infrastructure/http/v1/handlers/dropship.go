package handlers

import (
	"github.com/gin-gonic/gin"

	"stockd/internal/core/id"
	"stockd/internal/domain/logistics/dropship"
	"stockd/internal/infrastructure/http/v1/dto"
)

// DropShipmentHandler serves drop shipment endpoints.
type DropShipmentHandler struct {
	BaseHandler

	service *dropship.Service
}

// NewDropShipmentHandler creates a new drop shipment handler.
func NewDropShipmentHandler(service *dropship.Service) *DropShipmentHandler {
	return &DropShipmentHandler{service: service}
}

// Create handles POST /drop-shipments.
func (h *DropShipmentHandler) Create(c *gin.Context) {
	var req dto.CreateDropShipmentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, err)
		return
	}

	d := dropship.New(productID, req.CustomerName, req.Address)
	if err := h.service.Create(c.Request.Context(), d); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, d.ID.String())
}

// Get handles GET /drop-shipments/:id.
func (h *DropShipmentHandler) Get(c *gin.Context) {
	shipmentID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), shipmentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToDropShipmentResponse(d))
}

// Update handles PUT /drop-shipments/:id.
func (h *DropShipmentHandler) Update(c *gin.Context) {
	shipmentID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDropShipmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), shipmentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	d.CustomerName = req.CustomerName
	d.Address = req.Address
	d.SetVersion(req.Version)

	if err := h.service.Update(c.Request.Context(), d); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToDropShipmentResponse(d))
}

// MarkShipped handles POST /drop-shipments/:id/ship.
func (h *DropShipmentHandler) MarkShipped(c *gin.Context) {
	shipmentID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.MarkShipped(c.Request.Context(), shipmentID); err != nil {
		h.Error(c, err)
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), shipmentID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToDropShipmentResponse(d))
}

// Delete handles DELETE /drop-shipments/:id.
func (h *DropShipmentHandler) Delete(c *gin.Context) {
	shipmentID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), shipmentID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /drop-shipments.
func (h *DropShipmentHandler) List(c *gin.Context) {
	var q dto.DropShipmentQuery
	if !h.BindQuery(c, &q) {
		return
	}
	productID, ok := h.ParseOptionalID(c, q.ProductID)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), dropship.ListFilter{
		Page:      h.Page(q.PageQuery),
		ProductID: productID,
		Shipped:   q.Shipped,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.DropShipmentResponse, 0, len(result.Items))
	for _, d := range result.Items {
		items = append(items, dto.ToDropShipmentResponse(d))
	}
	h.OK(c, dto.ListResponse[dto.DropShipmentResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
