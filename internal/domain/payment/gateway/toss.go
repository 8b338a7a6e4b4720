package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"prompt_market/internal/pkg/config"
)

// ConfirmRequest is the server-to-server confirmation payload. The
// paymentKey is the opaque reference issued to the browser widget.
type ConfirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

// Payment is the subset of the gateway's payment object this service
// echoes to callers. The optional instrument blobs are passed through
// untouched.
type Payment struct {
	PaymentKey     string          `json:"paymentKey"`
	OrderID        string          `json:"orderId"`
	OrderName      string          `json:"orderName"`
	Method         string          `json:"method"`
	TotalAmount    int64           `json:"totalAmount"`
	Status         string          `json:"status"`
	RequestedAt    string          `json:"requestedAt"`
	ApprovedAt     string          `json:"approvedAt"`
	Card           json.RawMessage `json:"card,omitempty"`
	VirtualAccount json.RawMessage `json:"virtualAccount,omitempty"`
	Transfer       json.RawMessage `json:"transfer,omitempty"`
}

// ApprovedTime parses the gateway's approval timestamp; nil when absent
// or malformed.
func (p *Payment) ApprovedTime() *time.Time {
	if p.ApprovedAt == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, p.ApprovedAt)
	if err != nil {
		return nil
	}
	return &t
}

// GatewayError is a decline reported by the gateway itself, as opposed
// to a transport failure.
type GatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ConfirmationClient performs the authenticated confirmation call.
// Declines come back as *GatewayError; anything else is transport.
type ConfirmationClient interface {
	Confirm(ctx context.Context, req ConfirmRequest) (*Payment, error)
}

// TossClient talks to the Toss Payments confirmation endpoint with the
// server-held secret key over HTTP Basic auth.
type TossClient struct {
	httpClient *http.Client
	secretKey  string
	confirmURL string
}

// NewTossClient builds the client from configuration.
func NewTossClient(cfg config.TossConfig) (*TossClient, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("toss config missing")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &TossClient{
		httpClient: &http.Client{Timeout: timeout},
		secretKey:  cfg.SecretKey,
		confirmURL: cfg.ConfirmURL,
	}, nil
}

// Confirm posts the confirmation and decodes either a payment object or
// the gateway's {code,message} decline. No retries; the caller owns
// retry policy.
func (c *TossClient) Confirm(ctx context.Context, req ConfirmRequest) (*Payment, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.confirmURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	// Basic auth with the secret key as username and empty password.
	httpReq.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(c.secretKey+":")))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var payment Payment
		if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
			return nil, fmt.Errorf("gateway response decode failed: %w", err)
		}
		return &payment, nil
	}

	var gwErr GatewayError
	if err := json.NewDecoder(resp.Body).Decode(&gwErr); err != nil || gwErr.Code == "" {
		return nil, fmt.Errorf("gateway returned status %d with unreadable body", resp.StatusCode)
	}
	return nil, &gwErr
}

var _ ConfirmationClient = (*TossClient)(nil)
