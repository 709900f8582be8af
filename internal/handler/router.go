package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"leisure-booking-api/internal/handler/api"
	"leisure-booking-api/internal/handler/middleware"
	"leisure-booking-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	availabilityHandler *api.AvailabilityHandler,
	bookingHandler *api.BookingHandler,
	webhookHandler *api.WebhookHandler,
	couponHandler *api.CouponHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, availabilityHandler, bookingHandler, webhookHandler, couponHandler, adminHandler, authMiddleware, rateLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	availabilityHandler *api.AvailabilityHandler,
	bookingHandler *api.BookingHandler,
	webhookHandler *api.WebhookHandler,
	couponHandler *api.CouponHandler,
	adminHandler *api.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/availability", Handler: availabilityHandler.GetDayGrid},
			{Method: http.MethodPost, Path: "/hold", Handler: bookingHandler.CreateHold, Mw: []gin.HandlerFunc{rateLimiter.Limit()}},
			{Method: http.MethodPost, Path: "/checkout", Handler: bookingHandler.Checkout, Mw: []gin.HandlerFunc{rateLimiter.Limit()}},
		})

		orders := apiGroup.Group("/orders")
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetOrder},
			})
		}

		coupons := apiGroup.Group("/coupons")
		{
			addRoutes(coupons, []route{
				{Method: http.MethodPost, Path: "/validate", Handler: couponHandler.ValidateCoupon, Mw: []gin.HandlerFunc{rateLimiter.Limit()}},
				{Method: http.MethodGet, Path: "/landing", Handler: couponHandler.ListLanding},
			})
		}

		payments := apiGroup.Group("/payments")
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/webhook", Handler: webhookHandler.HandleNotification},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/settings", Handler: adminHandler.GetSettings},
				{Method: http.MethodPut, Path: "/settings", Handler: adminHandler.UpdateSettings},
				{Method: http.MethodPost, Path: "/coupons", Handler: adminHandler.CreateCoupon},
				{Method: http.MethodGet, Path: "/coupons", Handler: adminHandler.ListCoupons},
				{Method: http.MethodPost, Path: "/orders/:id/cancel", Handler: adminHandler.CancelOrder},
				{Method: http.MethodPost, Path: "/sweep", Handler: adminHandler.Sweep},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
