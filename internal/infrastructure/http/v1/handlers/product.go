package handlers

import (
	"github.com/gin-gonic/gin"

	"stockd/internal/domain/catalogs/product"
	"stockd/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog endpoints.
type ProductHandler struct {
	BaseHandler

	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service *product.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := product.New(req.SKU, req.Name, req.UnitPrice)
	p.Description = req.Description

	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p.ID.String())
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToProductResponse(p))
}

// Update handles PUT /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}
	p.SKU = req.SKU
	p.Name = req.Name
	p.Description = req.Description
	p.UnitPrice = req.UnitPrice
	p.SetVersion(req.Version)

	if err := h.service.Update(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToProductResponse(p))
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /products.
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ProductQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.List(c.Request.Context(), product.ListFilter{
		Page:   h.Page(q.PageQuery),
		Name:   q.Name,
		SKU:    q.SKU,
		Search: q.Search,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.ProductResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, dto.ToProductResponse(p))
	}
	h.OK(c, dto.ListResponse[dto.ProductResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
