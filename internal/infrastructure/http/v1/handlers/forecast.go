package handlers

import (
	"github.com/gin-gonic/gin"

	"stockd/internal/core/id"
	"stockd/internal/domain/forecast"
	"stockd/internal/infrastructure/http/v1/dto"
)

// ForecastHandler serves demand forecast endpoints.
type ForecastHandler struct {
	BaseHandler

	service *forecast.Service
}

// NewForecastHandler creates a new forecast handler.
func NewForecastHandler(service *forecast.Service) *ForecastHandler {
	return &ForecastHandler{service: service}
}

// Create handles POST /demand-forecasts.
func (h *ForecastHandler) Create(c *gin.Context) {
	var req dto.CreateForecastRequest
	if !h.BindJSON(c, &req) {
		return
	}
	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, err)
		return
	}

	f := forecast.New(productID, req.Month, req.PredictedDemand)
	if err := h.service.Create(c.Request.Context(), f); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, f.ID.String())
}

// Get handles GET /demand-forecasts/:id.
func (h *ForecastHandler) Get(c *gin.Context) {
	forecastID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), forecastID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToForecastResponse(f))
}

// Update handles PUT /demand-forecasts/:id.
func (h *ForecastHandler) Update(c *gin.Context) {
	forecastID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateForecastRequest
	if !h.BindJSON(c, &req) {
		return
	}

	f, err := h.service.GetByID(c.Request.Context(), forecastID)
	if err != nil {
		h.Error(c, err)
		return
	}
	f.Month = req.Month
	f.PredictedDemand = req.PredictedDemand
	f.SetVersion(req.Version)

	if err := h.service.Update(c.Request.Context(), f); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ToForecastResponse(f))
}

// Delete handles DELETE /demand-forecasts/:id.
func (h *ForecastHandler) Delete(c *gin.Context) {
	forecastID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), forecastID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /demand-forecasts.
func (h *ForecastHandler) List(c *gin.Context) {
	var q dto.ForecastQuery
	if !h.BindQuery(c, &q) {
		return
	}
	productID, ok := h.ParseOptionalID(c, q.ProductID)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), forecast.ListFilter{
		Page:      h.Page(q.PageQuery),
		ProductID: productID,
		Month:     q.Month,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.ForecastResponse, 0, len(result.Items))
	for _, f := range result.Items {
		items = append(items, dto.ToForecastResponse(f))
	}
	h.OK(c, dto.ListResponse[dto.ForecastResponse]{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
