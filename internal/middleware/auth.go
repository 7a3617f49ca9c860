package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/creatorhub/creator-review-api/internal/constants"
	apierrors "github.com/creatorhub/creator-review-api/internal/errors"
	"github.com/creatorhub/creator-review-api/internal/models"
	"github.com/creatorhub/creator-review-api/internal/services"
)

// RequireAuth authenticates requests via a JWT bearer token. All 401
// handling lives here; handlers never produce auth failures themselves.
func RequireAuth(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apierrors.Unauthorized(c, "Invalid authorization format")
			c.Abort()
			return
		}

		claims, err := tokenService.Validate(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyClaims, claims)
		c.Set(constants.ContextKeyUsername, claims.Username)
		c.Set(constants.ContextKeyRole, claims.Role)
		c.Next()
	}
}

// GetClaims retrieves the authenticated claims from context.
func GetClaims(c *gin.Context) (*services.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.Claims)
	return claims, ok
}

// GetActor builds a workflow actor from the authenticated claims.
func GetActor(c *gin.Context) (services.Actor, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{
		Username: claims.Username,
		Role:     claims.Role,
	}, true
}

// GetRole retrieves the authenticated role from context.
func GetRole(c *gin.Context) (models.Role, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return "", false
	}
	return claims.Role, true
}
