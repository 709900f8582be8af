package gateway

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"leisure-booking-api/internal/pkg/config"
	"leisure-booking-api/internal/pkg/errs"
	"leisure-booking-api/internal/usecase/commands"
)

var (
	ErrSignMismatch   = errs.New("notification signature mismatch")
	ErrGatewayStatus  = errs.New("gateway returned non-success status")
	ErrVerifyRejected = errs.New("gateway rejected transaction verification")
)

// Client talks to the card payment provider over its REST API. Requests are
// bounded by the configured timeout and transient failures are retried a
// fixed number of times; anything still failing bubbles up to the caller.
type Client struct {
	cfg  config.GatewayConfig
	http *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type registerRequest struct {
	MerchantID  int64  `json:"merchantId"`
	PosID       int64  `json:"posId"`
	SessionID   string `json:"sessionId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Language    string `json:"language"`
	URLReturn   string `json:"urlReturn"`
	URLStatus   string `json:"urlStatus"`
	Sign        string `json:"sign"`
}

type registerResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

func (c *Client) RegisterSession(ctx context.Context, p commands.RegisterSessionParams) (*commands.RegisterSessionResult, error) {
	body := registerRequest{
		MerchantID:  c.cfg.MerchantID,
		PosID:       c.cfg.PosID,
		SessionID:   p.SessionID,
		Amount:      p.AmountCents,
		Currency:    p.Currency,
		Description: p.Description,
		Email:       p.Email,
		Country:     "PL",
		Language:    "pl",
		URLReturn:   c.cfg.ReturnURL,
		URLStatus:   c.cfg.StatusURL,
		Sign: signDoc(registrationSignDoc{
			SessionID:  p.SessionID,
			MerchantID: c.cfg.MerchantID,
			Amount:     p.AmountCents,
			Currency:   p.Currency,
			CRC:        c.cfg.CRC,
		}),
	}

	raw, err := c.postWithRetry(ctx, "/api/v1/transaction/register", body)
	if err != nil {
		return nil, err
	}

	var resp registerResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errs.Wrap(err, "failed to decode register response")
	}
	if resp.Data.Token == "" {
		return nil, errs.Wrap(ErrGatewayStatus, "register response has no token")
	}

	return &commands.RegisterSessionResult{
		Token:       resp.Data.Token,
		RedirectURL: fmt.Sprintf("%s/trnRequest/%s", c.cfg.BaseURL, resp.Data.Token),
	}, nil
}

func (c *Client) VerifyNotificationSign(n commands.Notification) error {
	expected := signDoc(notificationSignDoc{
		MerchantID: n.MerchantID,
		PosID:      n.PosID,
		SessionID:  n.SessionID,
		OrderID:    n.OrderID,
		Amount:     n.AmountCents,
		Currency:   n.Currency,
		CRC:        c.cfg.CRC,
	})
	if subtle.ConstantTimeCompare([]byte(expected), []byte(n.Sign)) != 1 {
		return ErrSignMismatch
	}
	return nil
}

type verifyRequest struct {
	MerchantID int64  `json:"merchantId"`
	PosID      int64  `json:"posId"`
	SessionID  string `json:"sessionId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	OrderID    int64  `json:"orderId"`
	Sign       string `json:"sign"`
}

type verifyResponse struct {
	Data struct {
		Status string `json:"status"`
	} `json:"data"`
}

func (c *Client) VerifyTransaction(ctx context.Context, sessionID string, gatewayOrderID, amountCents int64, currency string) ([]byte, error) {
	body := verifyRequest{
		MerchantID: c.cfg.MerchantID,
		PosID:      c.cfg.PosID,
		SessionID:  sessionID,
		Amount:     amountCents,
		Currency:   currency,
		OrderID:    gatewayOrderID,
		Sign: signDoc(verificationSignDoc{
			SessionID: sessionID,
			OrderID:   gatewayOrderID,
			Amount:    amountCents,
			Currency:  currency,
			CRC:       c.cfg.CRC,
		}),
	}

	raw, err := c.putWithRetry(ctx, "/api/v1/transaction/verify", body)
	if err != nil {
		return nil, err
	}

	var resp verifyResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errs.Wrap(err, "failed to decode verify response")
	}
	if resp.Data.Status != "success" {
		return nil, ErrVerifyRejected
	}
	return raw, nil
}

func (c *Client) postWithRetry(ctx context.Context, path string, body any) ([]byte, error) {
	return c.doWithRetry(ctx, http.MethodPost, path, body)
}

func (c *Client) putWithRetry(ctx context.Context, path string, body any) ([]byte, error) {
	return c.doWithRetry(ctx, http.MethodPut, path, body)
}

// doWithRetry retries timeouts and 5xx responses with a short linear backoff.
// 4xx responses are terminal: retrying a rejected request cannot help.
func (c *Client) doWithRetry(ctx context.Context, method, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode gateway request")
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		raw, retryable, err := c.do(ctx, method, path, payload)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (raw []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to build gateway request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(fmt.Sprintf("%d", c.cfg.PosID), c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, errs.Wrap(err, "gateway request failed")
	}
	defer resp.Body.Close()

	raw, err = io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, true, errs.Wrap(err, "failed to read gateway response")
	}

	if resp.StatusCode >= 500 {
		return nil, true, errs.Wrap(ErrGatewayStatus, fmt.Sprintf("status %d", resp.StatusCode))
	}
	if resp.StatusCode >= 400 {
		return nil, false, errs.Wrap(ErrGatewayStatus, fmt.Sprintf("status %d", resp.StatusCode))
	}
	return raw, false, nil
}
