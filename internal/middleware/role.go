package middleware

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/creatorhub/creator-review-api/internal/errors"
	"github.com/creatorhub/creator-review-api/internal/models"
)

// RequireRole rejects requests whose authenticated role is not in the
// allowed set. Must run after RequireAuth.
func RequireRole(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetRole(c)
		if !exists {
			apierrors.Forbidden(c, "Role not found in context")
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "You do not have permission to access this resource")
		c.Abort()
	}
}
