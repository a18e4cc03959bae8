package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog/models"
	"catalog/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(tokens *utils.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/private", AuthRequired(tokens), func(c *gin.Context) {
		id, _ := utils.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	r.GET("/admin", AuthRequired(tokens), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	r := newRouter(tokens)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	raw, err := tokens.Issue(&models.User{ID: 5, Role: models.RoleUser})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: raw})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":5}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	r := newRouter(tokens)

	userToken, err := tokens.Issue(&models.User{ID: 1, Role: models.RoleUser})
	require.NoError(t, err)
	adminToken, err := tokens.Issue(&models.User{ID: 2, Role: models.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
