package middleware

import (
	"net/http"
	"strings"

	"buildledger/internal/pkg/jwt"
	"buildledger/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuth.
const (
	ContextUserID   = "user_id"
	ContextUserName = "user_name"
	ContextRole     = "role"
)

// JWTAuth validates the bearer token and stores the caller's identity in
// the gin context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.CustomError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserName, claims.Name)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}
