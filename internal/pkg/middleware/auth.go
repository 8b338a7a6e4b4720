package middleware

import (
	"net/http"
	"strings"

	"prompt_market/internal/domain/user/model"
	"prompt_market/pkg/response"
	"prompt_market/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores identity in context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// OptionalAuthMiddleware parses a bearer token when present but never
// rejects; anonymous browsing stays allowed on public catalog routes.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := utils.ParseToken(parts[1]); err == nil {
					c.Set("userID", claims.UserID)
					c.Set("role", claims.Role)
				}
			}
		}
		c.Next()
	}
}

// AdminMiddleware requires the admin role; run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, response.ErrNoPermission, "Unauthorized")
			c.Abort()
			return
		}

		roleInt, ok := role.(int)
		if !ok {
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Invalid role format")
			c.Abort()
			return
		}

		if roleInt != model.RoleAdmin {
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Admin permission required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// SellerMiddleware requires seller or admin role; run after AuthMiddleware.
func SellerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, response.ErrNoPermission, "Unauthorized")
			c.Abort()
			return
		}

		roleInt, ok := role.(int)
		if !ok || (roleInt != model.RoleSeller && roleInt != model.RoleAdmin) {
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Seller permission required")
			c.Abort()
			return
		}

		c.Next()
	}
}
