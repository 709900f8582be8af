package api

import (
	"errors"
	"net/http"

	reqdto "leisure-booking-api/internal/handler/dto/request"
	resdto "leisure-booking-api/internal/handler/dto/response"
	"leisure-booking-api/internal/handler/httperr"
	"leisure-booking-api/internal/usecase/commands"
	"leisure-booking-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminCommands   commands.AdminCommands
	sweepCommands   commands.SweepCommands
	couponQueries   queries.CouponQueries
	settingsQueries queries.SettingsQueries
}

func NewAdminHandler(
	adminCommands commands.AdminCommands,
	sweepCommands commands.SweepCommands,
	couponQueries queries.CouponQueries,
	settingsQueries queries.SettingsQueries,
) *AdminHandler {
	return &AdminHandler{
		adminCommands:   adminCommands,
		sweepCommands:   sweepCommands,
		couponQueries:   couponQueries,
		settingsQueries: settingsQueries,
	}
}

// @Summary Get settings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SettingsResponse
// @Failure 401 {object} httperr.Response
// @Router /admin/settings [get]
func (h *AdminHandler) GetSettings(c *gin.Context) {
	snap, err := h.settingsQueries.Get(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSettings(snap))
}

// @Summary Update settings
// @Description Replace the booking settings; existing holds keep their TTL
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateSettingsRequest true "Settings"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/settings [put]
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req reqdto.UpdateSettingsRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	if err := h.adminCommands.UpdateSettings(c.Request.Context(), req.ToSnapshot()); err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidSettings):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid settings values", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Create coupon
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCouponRequest true "Coupon definition"
// @Success 201 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/coupons [post]
func (h *AdminHandler) CreateCoupon(c *gin.Context) {
	var req reqdto.CreateCouponRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	id, err := h.adminCommands.CreateCoupon(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCoupon):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid coupon definition", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary List coupons
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.CouponResponse
// @Failure 401 {object} httperr.Response
// @Router /admin/coupons [get]
func (h *AdminHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.couponQueries.ListAll(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCouponSnapshots(coupons))
}

// @Summary Cancel order
// @Description Converge every slot of the order to CANCELLED, booked ones included
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.CancelOrderRequest true "Cancellation reason"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/orders/{id}/cancel [post]
func (h *AdminHandler) CancelOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID format", nil)
		return
	}

	var req reqdto.CancelOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	if err := h.adminCommands.CancelOrder(c.Request.Context(), id, req.Reason); err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		case errors.Is(err, commands.ErrNothingToCancel):
			httperr.AbortWithError(c, http.StatusConflict, err, "Order has no active slots", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Sweep expired holds
// @Description Manually trigger the expiry sweep; the background worker runs it periodically anyway
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Failure 401 {object} httperr.Response
// @Router /admin/sweep [post]
func (h *AdminHandler) Sweep(c *gin.Context) {
	reclaimed, err := h.sweepCommands.SweepExpiredHolds(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reclaimed": reclaimed})
}
