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
)

type CouponHandler struct {
	couponCommands commands.CouponCommands
	couponQueries  queries.CouponQueries
}

func NewCouponHandler(couponCommands commands.CouponCommands, couponQueries queries.CouponQueries) *CouponHandler {
	return &CouponHandler{
		couponCommands: couponCommands,
		couponQueries:  couponQueries,
	}
}

// @Summary Validate coupon
// @Description Price the prospective items and report the discount; consumes nothing
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.ValidateCouponRequest true "Coupon validation request"
// @Success 200 {object} resdto.CouponValidationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /coupons/validate [post]
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req reqdto.ValidateCouponRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.couponCommands.ValidateCoupon(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCouponNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Coupon not found", nil)
		case errors.Is(err, commands.ErrCouponInvalid):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Coupon is not applicable to this order", nil)
		case errors.Is(err, commands.ErrInvalidResource):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
		case errors.Is(err, commands.ErrInvalidTimeFormat):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, time or duration", nil)
		case errors.Is(err, commands.ErrCapacityExceeded):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "People count exceeds resource capacity", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCouponValidation(result))
}

// @Summary Landing coupons
// @Description Coupons currently advertised on the landing page
// @Tags coupons
// @Produce json
// @Success 200 {array} resdto.CouponResponse
// @Router /coupons/landing [get]
func (h *CouponHandler) ListLanding(c *gin.Context) {
	coupons, err := h.couponQueries.ListLanding(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCouponSnapshots(coupons))
}
