//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leisure-booking-api/internal/handler/api"
	"leisure-booking-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWebhookCommands struct {
	err  error
	last *commands.Notification
}

func (f *fakeWebhookCommands) HandleNotification(_ context.Context, n commands.Notification) error {
	f.last = &n
	return f.err
}

func postWebhook(t *testing.T, cmds commands.WebhookCommands, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("request_id", testRequestID)
		c.Next()
	})
	engine.POST("/api/payments/webhook", api.NewWebhookHandler(cmds).HandleNotification)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"merchantId": 1001,
	"posId": 1001,
	"sessionId": "session-1",
	"orderId": 987654,
	"amount": 13500,
	"currency": "PLN",
	"status": "SUCCESS",
	"sign": "deadbeef"
}`

func TestWebhookHandler(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "acknowledged", err: nil, wantStatus: http.StatusOK},
		{name: "bad signature", err: commands.ErrInvalidSignature, wantStatus: http.StatusBadRequest},
		{name: "unknown status", err: commands.ErrUnknownStatus, wantStatus: http.StatusBadRequest},
		{name: "unknown session", err: commands.ErrTransactionNotFound, wantStatus: http.StatusNotFound},
		{name: "verification failed triggers redelivery", err: commands.ErrVerificationFailed, wantStatus: http.StatusBadGateway},
		{name: "storage failure", err: commands.ErrDatabaseOperationFailed, wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeWebhookCommands{err: tc.err}
			rec := postWebhook(t, fake, validBody)
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.NotNil(t, fake.last)
			assert.Equal(t, "session-1", fake.last.SessionID)
		})
	}

	t.Run("malformed body never reaches the command", func(t *testing.T) {
		fake := &fakeWebhookCommands{}
		rec := postWebhook(t, fake, `{"sessionId": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, fake.last)
	})

	t.Run("failure response carries the request id for support", func(t *testing.T) {
		fake := &fakeWebhookCommands{err: commands.ErrVerificationFailed}
		rec := postWebhook(t, fake, validBody)
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var body struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
			Detail struct {
				RequestID string `json:"requestId"`
			} `json:"detail"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Verification failed", body.Error.Message)
		assert.Equal(t, testRequestID, body.Detail.RequestID)
	})
}
