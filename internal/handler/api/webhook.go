package api

import (
	"errors"
	"log/slog"
	"net/http"

	"leisure-booking-api/internal/handler/httperr"
	"leisure-booking-api/internal/handler/middleware"
	"leisure-booking-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	webhookCommands commands.WebhookCommands
}

func NewWebhookHandler(webhookCommands commands.WebhookCommands) *WebhookHandler {
	return &WebhookHandler{
		webhookCommands: webhookCommands,
	}
}

// @Summary Payment notification webhook
// @Description Receives gateway callbacks. A non-2xx response makes the gateway redeliver.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body commands.Notification true "Gateway notification"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /payments/webhook [post]
func (h *WebhookHandler) HandleNotification(c *gin.Context) {
	var n commands.Notification
	if bindErr := c.ShouldBindJSON(&n); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid notification format", nil)
		return
	}

	err := h.webhookCommands.HandleNotification(c.Request.Context(), n)
	if err != nil {
		// Error payloads stay generic; the request id ties the gateway's
		// delivery log to ours when support digs into a failed payment.
		requestID := middleware.GetRequestID(c)
		slog.Error("webhook processing failed",
			"request_id", requestID, "session_id", n.SessionID, "error", err)

		switch {
		case errors.Is(err, commands.ErrInvalidSignature):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid signature", gin.H{"requestId": requestID})
		case errors.Is(err, commands.ErrUnknownStatus):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown payment status", gin.H{"requestId": requestID})
		case errors.Is(err, commands.ErrTransactionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Unknown payment session", gin.H{"requestId": requestID})
		case errors.Is(err, commands.ErrVerificationFailed):
			// Non-2xx so the gateway redelivers once verification recovers.
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Verification failed", gin.H{"requestId": requestID})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", gin.H{"requestId": requestID})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
