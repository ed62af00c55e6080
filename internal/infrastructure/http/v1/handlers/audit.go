package handlers

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"stockd/internal/core/apperror"
	"stockd/internal/infrastructure/storage/postgres"
)

// AuditHandler serves audit history. Admin only; the router guards it.
type AuditHandler struct {
	BaseHandler

	audit *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(audit *postgres.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

var auditEntityTypes = map[string]bool{
	"product":             true,
	"stock":               true,
	"purchase_order":      true,
	"sales_order":         true,
	"goods_received_note": true,
	"sales_invoice":       true,
	"stock_transfer":      true,
	"drop_shipment":       true,
	"demand_forecast":     true,
}

type auditEntryResponse struct {
	ID         string          `json:"id"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Action     string          `json:"action"`
	UserID     string          `json:"userId,omitempty"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// History handles GET /audit/:entity_type/:id.
func (h *AuditHandler) History(c *gin.Context) {
	entityType := c.Param("entity_type")
	if !auditEntityTypes[entityType] {
		h.Error(c, apperror.NewValidation("unknown entity type").
			WithDetail("entity_type", entityType))
		return
	}
	entityID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.audit.GetEntityHistory(c.Request.Context(), entityType, entityID, 100)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, auditEntryResponse{
			ID:         e.ID.String(),
			EntityType: e.EntityType,
			EntityID:   e.EntityID.String(),
			Action:     string(e.Action),
			UserID:     e.UserID,
			Changes:    e.Changes,
			CreatedAt:  e.CreatedAt,
		})
	}
	h.OK(c, gin.H{"items": items})
}
