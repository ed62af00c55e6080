package middleware

import (
	"github.com/gin-gonic/gin"

	"stockd/internal/core/apperror"
	"stockd/internal/core/appctx"
	"stockd/internal/domain/auth"
)

// RequirePermission checks the caller's roles against the policy
// table. Roles come from the validated token; the permission mapping
// stays server-side so a stale token cannot grant retired rights.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		if !auth.HasPermission(user.Roles, permission) {
			_ = c.Error(apperror.NewForbidden("insufficient permissions").
				WithDetail("required_permission", permission))
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin allows only administrators through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}
		if !user.IsAdmin {
			_ = c.Error(apperror.NewForbidden("administrator access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
