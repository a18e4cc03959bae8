package middleware

import (
	"net/http"
	"strings"

	"catalog/utils"

	"github.com/gin-gonic/gin"
)

const TokenCookie = "token"

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// AuthRequired accepts a bearer token or the session cookie and stores the
// caller's id and role on the context.
func AuthRequired(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		utils.SetUser(c, claims)
		c.Next()
	}
}
