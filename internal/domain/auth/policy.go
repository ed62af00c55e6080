package auth

// Permission names follow "<resource>:<action>".
//
// The table is the single authority for what each role may do; the
// HTTP permission middleware consults it instead of trusting
// permissions baked into tokens.
var rolePermissions = map[string][]string{
	RoleInventoryManager: {
		"product:create", "product:read", "product:update", "product:delete",
		"stock:create", "stock:read", "stock:update", "stock:delete",
		"purchase_order:create", "purchase_order:read", "purchase_order:update", "purchase_order:delete",
		"goods_received_note:create", "goods_received_note:read", "goods_received_note:update", "goods_received_note:delete",
		"demand_forecast:create", "demand_forecast:read", "demand_forecast:update", "demand_forecast:delete",
	},
	RoleLogistics: {
		"stock_transfer:create", "stock_transfer:read", "stock_transfer:delete",
		"drop_shipment:create", "drop_shipment:read", "drop_shipment:update", "drop_shipment:delete",
	},
	RoleViewer: {
		"product:read", "stock:read",
		"purchase_order:read", "sales_order:read",
		"goods_received_note:read", "sales_invoice:read",
		"stock_transfer:read", "drop_shipment:read",
		"demand_forecast:read",
	},
}

// HasPermission reports whether any of the roles grants the
// permission. Admins hold every permission.
func HasPermission(roles []string, permission string) bool {
	for _, role := range roles {
		if role == RoleAdmin {
			return true
		}
		for _, p := range rolePermissions[role] {
			if p == permission {
				return true
			}
		}
	}
	return false
}

// PermissionsForRole returns the permission list of a role, nil for
// unknown roles. Admin returns nil as well since it bypasses the
// table.
func PermissionsForRole(role string) []string {
	perms := rolePermissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	if len(out) == 0 {
		return nil
	}
	return out
}
