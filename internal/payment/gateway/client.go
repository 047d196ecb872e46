// Package gateway implements the checkout-provider client. The provider is
// external: this client only creates sessions and reads provider-side truth
// back, it never mutates local state.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mahir/lifelessons/internal/payment/domain"
)

// Config holds the provider endpoint plus the fixed product the app sells.
type Config struct {
	BaseURL     string
	APIKey      string
	ProductName string
	UnitAmount  int64 // minor currency units
	Currency    string
}

// Client talks to the checkout provider's JSON API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type sessionPayload struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	PaymentIntent string            `json:"payment_intent"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

type errorPayload struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSession opens a checkout session for the fixed product and embeds the
// metadata so it survives the redirect round-trip.
func (c *Client) CreateSession(ctx context.Context, params domain.CreateSessionParams) (*domain.CheckoutSession, error) {
	body := map[string]interface{}{
		"mode":                "payment",
		"client_reference_id": uuid.New().String(),
		"customer_email":      params.CustomerEmail,
		"metadata":            params.Metadata,
		"success_url":         params.SuccessURL,
		"cancel_url":          params.CancelURL,
		"line_items": []map[string]interface{}{
			{
				"name":     c.cfg.ProductName,
				"amount":   c.cfg.UnitAmount,
				"currency": c.cfg.Currency,
				"quantity": 1,
			},
		},
	}

	payload, err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", body)
	if err != nil {
		return nil, err
	}
	return payload.toSession(), nil
}

// RetrieveSession resolves a session reference against the provider.
func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("gateway: session id is required")
	}
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	payload, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return payload.toSession(), nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*sessionPayload, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gateway: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("gateway: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorPayload
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("gateway: %s (status %d)", errResp.Error.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("gateway: unexpected status %d", resp.StatusCode)
	}

	var payload sessionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("gateway: malformed session response: %w", err)
	}
	if payload.ID == "" {
		return nil, fmt.Errorf("gateway: malformed session response: missing id")
	}
	return &payload, nil
}

func (p *sessionPayload) toSession() *domain.CheckoutSession {
	return &domain.CheckoutSession{
		ID:            p.ID,
		URL:           p.URL,
		PaymentStatus: p.PaymentStatus,
		AmountTotal:   p.AmountTotal,
		Currency:      p.Currency,
		TransactionID: p.PaymentIntent,
		CustomerEmail: p.CustomerEmail,
		Metadata:      p.Metadata,
	}
}
