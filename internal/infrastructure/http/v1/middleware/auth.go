package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"stockd/internal/core/apperror"
	"stockd/internal/core/appctx"
	"stockd/internal/domain/auth"
)

// TokenValidator validates access tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// Auth middleware validates JWT tokens and populates the user
// context.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		user := &appctx.UserContext{
			UserID:   claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
			Roles:    claims.Roles,
			IsAdmin:  hasRole(claims.Roles, auth.RoleAdmin),
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Set("user_id", user.UserID)
		c.Set("roles", user.Roles)

		c.Next()
	}
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
