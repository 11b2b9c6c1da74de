// Package yoco is a thin client for the Yoco online payments API
// (https://payments.yoco.com/api). All amounts are integer cents.
// The client performs no retries; callers decide on retry policy.
package yoco

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://payments.yoco.com/api"

// APIError carries the provider's HTTP status and error body for any
// non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yoco: api error: status %d: %s", e.StatusCode, e.Body)
}

// TransportError wraps a network-level failure reaching the gateway
// (DNS, timeout, connection refused) so callers can distinguish it
// from their own errors.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("yoco: %s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// CheckoutMetadata is the correlation payload carried through the
// gateway's redirect and webhook flows.
type CheckoutMetadata struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId,omitempty"`
}

type CheckoutRequest struct {
	Amount     int64            `json:"amount"` // cents
	Currency   string           `json:"currency"`
	SuccessURL string           `json:"successUrl,omitempty"`
	CancelURL  string           `json:"cancelUrl,omitempty"`
	FailureURL string           `json:"failureUrl,omitempty"`
	Metadata   CheckoutMetadata `json:"metadata"`
}

type Checkout struct {
	ID          string           `json:"id"`
	RedirectURL string           `json:"redirectUrl"`
	Status      string           `json:"status"`
	Amount      int64            `json:"amount"`
	Currency    string           `json:"currency"`
	Metadata    CheckoutMetadata `json:"metadata"`
}

type WebhookRegistration struct {
	ID     string   `json:"id"`
	Name   string   `json:"name,omitempty"`
	URL    string   `json:"url"`
	Events []string `json:"events,omitempty"`
	Secret string   `json:"secret,omitempty"` // returned once at registration
	Mode   string   `json:"mode,omitempty"`
}

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func NewClient(secretKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateCheckout creates a hosted checkout session and returns the
// redirect URL the customer must be sent to.
func (c *Client) CreateCheckout(ctx context.Context, req *CheckoutRequest) (*Checkout, error) {
	var out Checkout
	if err := c.do(ctx, http.MethodPost, "/checkouts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCheckout fetches the current state of a checkout session.
func (c *Client) GetCheckout(ctx context.Context, checkoutID string) (*Checkout, error) {
	var out Checkout
	if err := c.do(ctx, http.MethodGet, "/checkouts/"+checkoutID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterWebhook subscribes url to payment events. The returned
// Secret is only ever present in this response and must be stored.
func (c *Client) RegisterWebhook(ctx context.Context, name, url string) (*WebhookRegistration, error) {
	body := map[string]string{"name": name, "url": url}
	var out WebhookRegistration
	if err := c.do(ctx, http.MethodPost, "/webhooks", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListWebhooks(ctx context.Context) ([]WebhookRegistration, error) {
	var out struct {
		Subscriptions []WebhookRegistration `json:"subscriptions"`
	}
	if err := c.do(ctx, http.MethodGet, "/webhooks", nil, &out); err != nil {
		return nil, err
	}
	return out.Subscriptions, nil
}

func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) error {
	return c.do(ctx, http.MethodDelete, "/webhooks/"+webhookID, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("yoco: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("yoco: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("yoco: read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{StatusCode: res.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("yoco: decode response: %w", err)
	}
	return nil
}
