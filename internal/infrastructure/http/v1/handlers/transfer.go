package handlers

import (
	"github.com/gin-gonic/gin"

	"stockd/internal/core/id"
	"stockd/internal/domain/logistics/transfer"
	"stockd/internal/infrastructure/http/v1/dto"
)

// TransferHandler serves stock transfer endpoints. A transfer moves
// quantity between locations as part of its creation; there is no
// separate execute step.
type TransferHandler struct {
	BaseHandler

	service *transfer.Service
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(service *transfer.Service) *TransferHandler {
	return &TransferHandler{service: service}
}

// Create handles POST /stock-transfers.
func (h *TransferHandler) Create(c *gin.Context) {
	var req dto.CreateTransferRequest
	if !h.BindJSON(c, &req) {
		return
	}
	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, err)
		return
	}

	t := transfer.New(productID, req.FromLocation, req.ToLocation, req.Quantity)
	if err := h.service.Create(c.Request.Context(), t); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToTransferResponse(t))
}

// Get handles GET /stock-transfers/:id.
func (h *TransferHandler) Get(c *gin.Context) {
	transferID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), transferID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToTransferResponse(t))
}

// Delete handles DELETE /stock-transfers/:id, reversing the move.
func (h *TransferHandler) Delete(c *gin.Context) {
	transferID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), transferID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /stock-transfers.
func (h *TransferHandler) List(c *gin.Context) {
	var q dto.TransferQuery
	if !h.BindQuery(c, &q) {
		return
	}
	productID, ok := h.ParseOptionalID(c, q.ProductID)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), transfer.ListFilter{
		Page:         h.Page(q.PageQuery),
		ProductID:    productID,
		FromLocation: q.FromLocation,
		ToLocation:   q.ToLocation,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.TransferResponse, 0, len(result.Items))
	for _, t := range result.Items {
		items = append(items, dto.ToTransferResponse(t))
	}
	h.OK(c, dto.ListResponse[dto.TransferResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
