package handlers

import (
	"github.com/gin-gonic/gin"

	"stockd/internal/core/id"
	"stockd/internal/domain/registers/stock"
	"stockd/internal/infrastructure/http/v1/dto"
)

// StockHandler serves the stock register endpoints.
type StockHandler struct {
	BaseHandler

	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(service *stock.Service) *StockHandler {
	return &StockHandler{service: service}
}

// Create handles POST /stocks.
func (h *StockHandler) Create(c *gin.Context) {
	var req dto.CreateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}
	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, err)
		return
	}

	s := stock.New(productID, req.Location)
	s.Quantity = req.Quantity
	if req.ReorderLevel > 0 {
		s.ReorderLevel = req.ReorderLevel
	}

	if err := h.service.Create(c.Request.Context(), s); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, s.ID.String())
}

// Get handles GET /stocks/:id.
func (h *StockHandler) Get(c *gin.Context) {
	stockID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), stockID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToStockResponse(s))
}

// Update handles PUT /stocks/:id.
func (h *StockHandler) Update(c *gin.Context) {
	stockID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), stockID)
	if err != nil {
		h.Error(c, err)
		return
	}
	s.Location = req.Location
	s.Quantity = req.Quantity
	s.ReorderLevel = req.ReorderLevel
	s.SetVersion(req.Version)

	if err := h.service.Update(c.Request.Context(), s); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToStockResponse(s))
}

// Delete handles DELETE /stocks/:id.
func (h *StockHandler) Delete(c *gin.Context) {
	stockID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), stockID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /stocks.
func (h *StockHandler) List(c *gin.Context) {
	var q dto.StockQuery
	if !h.BindQuery(c, &q) {
		return
	}
	productID, ok := h.ParseOptionalID(c, q.ProductID)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), stock.ListFilter{
		Page:         h.Page(q.PageQuery),
		ProductID:    productID,
		Location:     q.Location,
		Quantity:     q.Quantity,
		BelowReorder: q.BelowReorder,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.StockResponse, 0, len(result.Items))
	for _, s := range result.Items {
		items = append(items, dto.ToStockResponse(s))
	}
	h.OK(c, dto.ListResponse[dto.StockResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
