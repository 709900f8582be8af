package api

import (
	"errors"
	"log/slog"
	"net/http"

	reqdto "leisure-booking-api/internal/handler/dto/request"
	resdto "leisure-booking-api/internal/handler/dto/response"
	"leisure-booking-api/internal/handler/httperr"
	"leisure-booking-api/internal/handler/middleware"
	"leisure-booking-api/internal/usecase/commands"
	"leisure-booking-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	holdCommands     commands.HoldCommands
	checkoutCommands commands.CheckoutCommands
	orderQueries     queries.OrderQueries
}

func NewBookingHandler(
	holdCommands commands.HoldCommands,
	checkoutCommands commands.CheckoutCommands,
	orderQueries queries.OrderQueries,
) *BookingHandler {
	return &BookingHandler{
		holdCommands:     holdCommands,
		checkoutCommands: checkoutCommands,
		orderQueries:     orderQueries,
	}
}

// @Summary Create hold
// @Description Atomically reserve every requested slot with a TTL; all or nothing
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateHoldRequest true "Hold request"
// @Success 201 {object} resdto.HoldResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /hold [post]
func (h *BookingHandler) CreateHold(c *gin.Context) {
	var req reqdto.CreateHoldRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.holdCommands.CreateHold(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidResource):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
		case errors.Is(err, commands.ErrSlotConflict):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "One or more requested slots are no longer available", nil)
		case errors.Is(err, commands.ErrInvalidTimeFormat):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, time or duration", nil)
		case errors.Is(err, commands.ErrCapacityExceeded):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "People count exceeds resource capacity", nil)
		case errors.Is(err, commands.ErrCouponInvalid):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Coupon is not applicable to this order", nil)
		case errors.Is(err, commands.ErrInvalidCustomer):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid customer data", nil)
		case errors.Is(err, commands.ErrTooManyItems):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Too many items in one request", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromHoldResult(result))
}

// @Summary Checkout
// @Description Open a payment session for an order with live holds
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout [post]
func (h *BookingHandler) Checkout(c *gin.Context) {
	var req reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.checkoutCommands.Checkout(c.Request.Context(), req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		case errors.Is(err, commands.ErrAlreadyPaid):
			httperr.AbortWithError(c, http.StatusConflict, err, "Order is already paid", nil)
		case errors.Is(err, commands.ErrHoldExpired):
			httperr.AbortWithError(c, http.StatusGone, err, "Hold has expired, please book again", nil)
		case errors.Is(err, commands.ErrGateway):
			// Generic message to the caller; the request id lets support
			// correlate it with the gateway error in the logs.
			requestID := middleware.GetRequestID(c)
			slog.Error("payment gateway error during checkout",
				"request_id", requestID, "order_id", req.OrderID, "error", err)
			httperr.AbortWithError(c, http.StatusBadGateway, err,
				"Payment provider is unavailable, try again later", gin.H{"requestId": requestID})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}

// @Summary Get order
// @Description Order details including derived payment status
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *BookingHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID format", nil)
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrOrderViewNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}
