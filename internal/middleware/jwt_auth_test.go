package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJWTTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserID(c),
			"email":   GetUserEmail(c),
		})
	})
	return r
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "retailer-compare", claims.Issuer)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	r := setupJWTTestRouter()

	token, err := GenerateToken(7, "bob@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob@example.com")
}

func TestJWTAuth_Rejects(t *testing.T) {
	r := setupJWTTestRouter()

	cases := []struct {
		name   string
		header string
	}{
		{"无认证头", ""},
		{"格式错误", "Token abc"},
		{"Token 无效", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		name, header := tc.name, tc.header
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	// 临时把有效期调成负数，签出立即过期的 Token
	original := GetJWTConfig()
	SetJWTConfig(&JWTConfig{
		SecretKey: original.SecretKey,
		TokenTTL:  -time.Hour,
		Issuer:    original.Issuer,
	})
	token, err := GenerateToken(1, "old@example.com")
	SetJWTConfig(original)
	require.NoError(t, err)

	r := setupJWTTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
