//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leisure-booking-api/internal/handler/middleware"
	"leisure-booking-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func adminEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := middleware.NewAuthMiddleware(config.JWTConfig{Secret: testSecret})
	engine := gin.New()
	engine.GET("/admin/ping", auth.RequireAdmin(), func(c *gin.Context) {
		subject, _ := middleware.GetStaffSubject(c)
		c.JSON(http.StatusOK, gin.H{"subject": subject})
	})
	return engine
}

func TestRequireAdmin(t *testing.T) {
	engine := adminEngine()

	get := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec
	}

	t.Run("admin token passes and exposes the subject", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub":  "staff-42",
			"role": "admin",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		rec := get("Bearer " + token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "staff-42")
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get("").Code)
	})

	t.Run("non-bearer header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get("Basic abc").Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{
			"role": "admin",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		assert.Equal(t, http.StatusUnauthorized, get("Bearer "+token).Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"role": "admin",
			"exp":  time.Now().Add(-time.Hour).Unix(),
		})
		assert.Equal(t, http.StatusUnauthorized, get("Bearer "+token).Code)
	})

	t.Run("non-admin role", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"role": "staff",
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		assert.Equal(t, http.StatusUnauthorized, get("Bearer "+token).Code)
	})

	t.Run("missing role claim", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		assert.Equal(t, http.StatusUnauthorized, get("Bearer "+token).Code)
	})
}
