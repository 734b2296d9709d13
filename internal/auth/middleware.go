package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// RequireAuth rejects requests without a valid bearer token and stores the
// verified identity in the request context
func RequireAuth(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearer(c.GetHeader("Authorization"))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized, no token provided",
			})
			return
		}

		ident, err := issuer.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized, token is invalid or expired",
			})
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// OptionalAuth stores the identity when a valid bearer token is present and
// lets the request proceed anonymously otherwise
func OptionalAuth(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearer(c.GetHeader("Authorization"))
		if tokenStr != "" {
			if ident, err := issuer.Verify(tokenStr); err == nil {
				c.Set(identityKey, ident)
			}
		}
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity of the request, if any
func IdentityFrom(c *gin.Context) (Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	ident, ok := val.(Identity)
	return ident, ok
}

func extractBearer(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
