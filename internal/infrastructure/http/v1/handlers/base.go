// Package handlers implements API v1 endpoint handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
	"stockd/internal/domain"
	"stockd/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// BindJSON binds and validates a JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").
			WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").
			WithDetail("error", err.Error()))
		return false
	}
	return true
}

// ParseIDParam parses a UUID path parameter.
func (h *BaseHandler) ParseIDParam(c *gin.Context, name string) (id.ID, bool) {
	parsed, err := id.Parse(c.Param(name))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid identifier").
			WithDetail("param", name))
		return id.Nil(), false
	}
	return parsed, true
}

// ParseOptionalID parses a UUID query value, nil when absent.
func (h *BaseHandler) ParseOptionalID(c *gin.Context, value string) (*id.ID, bool) {
	if value == "" {
		return nil, true
	}
	parsed, err := id.Parse(value)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid identifier").
			WithDetail("value", value))
		return nil, false
	}
	return &parsed, true
}

// Page converts pagination query parameters.
func (h *BaseHandler) Page(q dto.PageQuery) domain.Page {
	return domain.Page{Limit: q.Limit, Offset: q.Offset}
}

// Error registers the error; middleware.ErrorHandler renders the
// JSON response.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Created sends 201 with the new resource ID.
func (h *BaseHandler) Created(c *gin.Context, resourceID string) {
	c.JSON(http.StatusCreated, dto.IDResponse{ID: resourceID})
}

// OK sends 200 with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends 204.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
