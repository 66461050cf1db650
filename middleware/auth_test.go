package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func runValidateToken(t *testing.T, authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/getmycart", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	ValidateToken(c)
	return c, w
}

func TestValidateTokenSetsUserIDAndRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token := signedToken(t, "test-secret", jwt.MapClaims{
		"user_id": 42,
		"role_id": 3,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	c, w := runValidateToken(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, c.IsAborted())

	userID, ok := UserID(c)
	require.True(t, ok)
	assert.Equal(t, uint(42), userID)

	role, exists := c.Get("role")
	require.True(t, exists, "role claim from the token must land in the context")
	assert.Equal(t, 3, role)
}

func TestValidateTokenWithoutRoleClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token := signedToken(t, "test-secret", jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	c, _ := runValidateToken(t, "Bearer "+token)

	_, ok := UserID(c)
	assert.True(t, ok)
	_, exists := c.Get("role")
	assert.False(t, exists)
}

func TestValidateTokenRejectsBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token := signedToken(t, "wrong-secret", jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	c, w := runValidateToken(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestValidateTokenMissingHeader(t *testing.T) {
	c, w := runValidateToken(t, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}
