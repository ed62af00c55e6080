package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission_Admin(t *testing.T) {
	roles := []string{RoleAdmin}

	assert.True(t, HasPermission(roles, "product:delete"))
	assert.True(t, HasPermission(roles, "sales_invoice:create"))
	assert.True(t, HasPermission(roles, "anything:at_all"))
}

func TestHasPermission_InventoryManager(t *testing.T) {
	roles := []string{RoleInventoryManager}

	assert.True(t, HasPermission(roles, "product:create"))
	assert.True(t, HasPermission(roles, "purchase_order:update"))
	assert.True(t, HasPermission(roles, "goods_received_note:create"))
	assert.True(t, HasPermission(roles, "demand_forecast:delete"))

	assert.False(t, HasPermission(roles, "stock_transfer:create"))
	assert.False(t, HasPermission(roles, "sales_order:create"))
	assert.False(t, HasPermission(roles, "user:create"))
}

func TestHasPermission_Logistics(t *testing.T) {
	roles := []string{RoleLogistics}

	assert.True(t, HasPermission(roles, "stock_transfer:create"))
	assert.True(t, HasPermission(roles, "drop_shipment:update"))

	assert.False(t, HasPermission(roles, "product:create"))
	assert.False(t, HasPermission(roles, "stock:read"))
}

func TestHasPermission_Viewer(t *testing.T) {
	roles := []string{RoleViewer}

	assert.True(t, HasPermission(roles, "product:read"))
	assert.True(t, HasPermission(roles, "sales_invoice:read"))

	assert.False(t, HasPermission(roles, "product:create"))
	assert.False(t, HasPermission(roles, "stock:update"))
}

func TestHasPermission_MultipleRoles(t *testing.T) {
	roles := []string{RoleViewer, RoleLogistics}

	assert.True(t, HasPermission(roles, "product:read"))
	assert.True(t, HasPermission(roles, "stock_transfer:create"))
	assert.False(t, HasPermission(roles, "product:create"))
}

func TestHasPermission_NoRoles(t *testing.T) {
	assert.False(t, HasPermission(nil, "product:read"))
	assert.False(t, HasPermission([]string{}, "product:read"))
	assert.False(t, HasPermission([]string{"unknown"}, "product:read"))
}
