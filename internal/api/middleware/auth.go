package middleware

import (
	"net/http"
	"strings"

	"coindex/internal/api/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks for a valid bearer access token in the Authorization
// header and puts the claims into the gin context for handlers.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, authService)
		if !ok {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAuth resolves the caller identity when a valid token is present
// but lets anonymous requests through. Used on the review creation route
// where guests are allowed.
func OptionalAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, authService); ok {
			c.Set("claims", claims)
			c.Set("userID", claims.UserID)
			c.Set("role", claims.Role)
		}
		c.Next()
	}
}

// RequireAdmin gates a route on the admin role. Must run after
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// bearerClaims extracts and validates the access token. Refresh tokens are
// rejected here so they cannot be used to call the API directly.
func bearerClaims(c *gin.Context, authService service.AuthService) (*service.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}
	claims, err := authService.ValidateToken(parts[1])
	if err != nil || claims.TokenType != "access" {
		return nil, false
	}
	return claims, true
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}
