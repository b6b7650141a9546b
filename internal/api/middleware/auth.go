package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mverhoef/authgate/internal/api/dto"
	"github.com/mverhoef/authgate/internal/core/service"
)

const (
	AuthHeaderKey  = "Authorization"
	AuthContextKey = "auth"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Msg: "Missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Msg: "Invalid authorization header format. Expected 'Bearer <token>'"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Msg: "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(AuthContextKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the token claims stored by AuthMiddleware.
func ClaimsFromContext(c *gin.Context) (*service.TokenClaims, bool) {
	v, exists := c.Get(AuthContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*service.TokenClaims)
	return claims, ok
}
