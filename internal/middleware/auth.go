package middleware

import (
	"net/http"
	"strings"

	"hwreview_backend/internal/auth"
	"hwreview_backend/internal/logger"
	"hwreview_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Bearer token and stores the caller's
// identity in the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": gin.H{"code": "UNAUTHORIZED", "message": "Authorization header missing or invalid"}})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": gin.H{"code": "INVALID_TOKEN", "message": "Invalid token"}})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller when a token is present
// but lets anonymous requests through. Used on tracking endpoints.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if claims, err := auth.ParseToken(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("role", claims.Role)
			}
		}
		c.Next()
	}
}

// RequireRole enforces the role hierarchy: a caller passes when their
// role ranks at least as high as the required one.
func RequireRole(required models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := contextRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": gin.H{"code": "FORBIDDEN", "message": "Access denied: no role"}})
			return
		}
		if !role.AtLeast(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": gin.H{"code": "FORBIDDEN", "message": "Access denied: insufficient permissions"}})
			return
		}
		c.Next()
	}
}

func contextRole(c *gin.Context) (models.UserRole, bool) {
	roleVal, exists := c.Get("role")
	if !exists {
		return "", false
	}
	if role, ok := roleVal.(models.UserRole); ok {
		return role, true
	}
	if roleStr, ok := roleVal.(string); ok {
		return models.UserRole(roleStr), true
	}
	return "", false
}

// ContextRole exposes the caller's role to handlers; member when absent.
func ContextRole(c *gin.Context) models.UserRole {
	if role, ok := contextRole(c); ok {
		return role
	}
	return models.UserRoleMember
}
