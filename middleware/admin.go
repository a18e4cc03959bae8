package middleware

import (
	"net/http"

	"catalog/models"
	"catalog/utils"

	"github.com/gin-gonic/gin"
)

// AdminOnly must run after AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if utils.GetUserRole(c) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}
