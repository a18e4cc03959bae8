package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"catalog/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	raw, err := m.Issue(&models.User{ID: 7, Role: models.RoleAdmin})
	require.NoError(t, err)

	claims, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	raw, err := m.Issue(&models.User{ID: 7, Role: models.RoleUser})
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = m.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestContextHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetUserID(c)
	assert.Error(t, err)

	SetUser(c, &Claims{UserID: 3, Role: models.RoleUser})
	id, err := GetUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint(3), id)
	assert.Equal(t, models.RoleUser, GetUserRole(c))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
