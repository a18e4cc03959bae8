package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
)

func SetUser(c *gin.Context, claims *Claims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserRoleKey, claims.Role)
}

func GetUserID(c *gin.Context) (uint, error) {
	val, ok := c.Get(UserIDKey)
	if !ok {
		return 0, errors.New("user_id not found in context")
	}
	id, ok := val.(uint)
	if !ok {
		return 0, errors.New("user_id is not a uint")
	}
	return id, nil
}

func GetUserRole(c *gin.Context) string {
	return c.GetString(UserRoleKey)
}
