//go:build unit

package handler_test

import (
	"net/http"
	"testing"

	"leisure-booking-api/internal/handler"
	"leisure-booking-api/internal/handler/api"
	"leisure-booking-api/internal/handler/middleware"
	"leisure-booking-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	cfg := config.Config{
		CORS: config.CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		},
		Log: config.LogConfig{Level: "error", TimeFormat: "2006-01-02 15:04:05"},
		JWT: config.JWTConfig{Secret: "test-secret"},
	}

	handler.NewRouter(
		engine,
		cfg,
		api.NewAvailabilityHandler(nil),
		api.NewBookingHandler(nil, nil, nil),
		api.NewWebhookHandler(nil),
		api.NewCouponHandler(nil, nil),
		api.NewAdminHandler(nil, nil, nil, nil),
		middleware.NewAuthMiddleware(cfg.JWT),
		middleware.NewRateLimiter(nil, cfg.Redis),
	)
	return engine
}

// The public paths are a contract with the frontend; renaming one breaks
// collaborators silently, so the table is pinned here.
func TestRouterPublicSurface(t *testing.T) {
	engine := newTestRouter(t)

	registered := make(map[string]bool)
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		http.MethodGet + " /health",
		http.MethodGet + " /api/availability",
		http.MethodPost + " /api/hold",
		http.MethodPost + " /api/checkout",
		http.MethodGet + " /api/orders/:id",
		http.MethodPost + " /api/coupons/validate",
		http.MethodGet + " /api/coupons/landing",
		http.MethodPost + " /api/payments/webhook",
		http.MethodGet + " /api/admin/settings",
		http.MethodPut + " /api/admin/settings",
		http.MethodPost + " /api/admin/coupons",
		http.MethodGet + " /api/admin/coupons",
		http.MethodPost + " /api/admin/orders/:id/cancel",
		http.MethodPost + " /api/admin/sweep",
	}
	for _, route := range want {
		assert.True(t, registered[route], "missing route %s", route)
	}

	assert.False(t, registered[http.MethodPost+" /api/bookings/hold"], "hold must live at /api/hold")
	assert.False(t, registered[http.MethodPost+" /api/bookings/:id/checkout"], "checkout takes the order id in the body")
}
