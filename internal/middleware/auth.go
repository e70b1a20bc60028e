package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crisiswatch/api/internal/pkg/response"
	"github.com/crisiswatch/api/internal/pkg/token"
)

// Auth validates the bearer token and stores the caller's identity and
// role on the request context. Verification of who the caller is happens
// at session exchange; here the signed claims are trusted as-is.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		// Support both "Bearer <token>" (case-insensitive) and raw token in header
		fields := strings.Fields(authHeader)
		var tokenString string
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			tokenString = fields[1]
		} else {
			tokenString = authHeader
		}

		claims, err := token.ValidateToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AdminOnly rejects callers whose role claim is not admin. Must run after
// Auth. The response is a generic forbidden with no detail on why.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			response.AuthorizationError(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
