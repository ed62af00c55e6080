package handlers

import (
	"github.com/gin-gonic/gin"

	"stockd/internal/core/id"
	"stockd/internal/domain/documents/grn"
	"stockd/internal/infrastructure/http/v1/dto"
)

// GRNHandler serves goods received note endpoints. Creating or
// updating a matched note triggers receipt matching; the response
// carries the resulting processed flag.
type GRNHandler struct {
	BaseHandler

	service *grn.Service
}

// NewGRNHandler creates a new note handler.
func NewGRNHandler(service *grn.Service) *GRNHandler {
	return &GRNHandler{service: service}
}

// Create handles POST /goods-received-notes.
func (h *GRNHandler) Create(c *gin.Context) {
	var req dto.CreateGRNRequest
	if !h.BindJSON(c, &req) {
		return
	}
	poID, err := id.Parse(req.PurchaseOrderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	n := grn.New(poID, req.ReceivedQuantity, req.ReceivedDate)
	n.Matched = req.Matched

	if err := h.service.Create(c.Request.Context(), n); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToGRNResponse(n))
}

// Get handles GET /goods-received-notes/:id.
func (h *GRNHandler) Get(c *gin.Context) {
	noteID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	n, err := h.service.GetByID(c.Request.Context(), noteID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToGRNResponse(n))
}

// Update handles PUT /goods-received-notes/:id.
func (h *GRNHandler) Update(c *gin.Context) {
	noteID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateGRNRequest
	if !h.BindJSON(c, &req) {
		return
	}

	n, err := h.service.GetByID(c.Request.Context(), noteID)
	if err != nil {
		h.Error(c, err)
		return
	}
	n.ReceivedQuantity = req.ReceivedQuantity
	n.ReceivedDate = req.ReceivedDate
	n.Matched = req.Matched
	n.SetVersion(req.Version)

	if err := h.service.Update(c.Request.Context(), n); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToGRNResponse(n))
}

// Delete handles DELETE /goods-received-notes/:id.
func (h *GRNHandler) Delete(c *gin.Context) {
	noteID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), noteID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /goods-received-notes.
func (h *GRNHandler) List(c *gin.Context) {
	var q dto.GRNQuery
	if !h.BindQuery(c, &q) {
		return
	}
	poID, ok := h.ParseOptionalID(c, q.PurchaseOrderID)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), grn.ListFilter{
		Page:            h.Page(q.PageQuery),
		PurchaseOrderID: poID,
		Matched:         q.Matched,
		Processed:       q.Processed,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.GRNResponse, 0, len(result.Items))
	for _, n := range result.Items {
		items = append(items, dto.ToGRNResponse(n))
	}
	h.OK(c, dto.ListResponse[dto.GRNResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
