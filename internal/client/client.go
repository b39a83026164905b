// Package client talks to the remote catalog and booking service over
// HTTP/JSON.  It preserves the service's four request shapes and field names
// exactly and never retries: a failed call is returned to the caller, who
// decides whether to ask the user to try again.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/manpreet1462/bookit/internal/model"
)

// DefaultBaseURL is where the booking service listens in local development.
const DefaultBaseURL = "http://localhost:3000"

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 1 << 20

// maxLoggedBody caps the raw body written to the log when a successful
// response cannot be decoded.
const maxLoggedBody = 4 << 10

// Fallback messages used when a failed response carries no message.
const (
	msgListExperiences = "Failed to fetch experiences"
	msgGetExperience   = "Failed to fetch experience"
	msgCreateBooking   = "Failed to create booking"
	msgValidatePromo   = "Failed to validate promo code"
)

// Client is a thin wrapper over http.Client bound to the service base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests, custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New returns a Client for baseURL.  A non-positive timeout leaves requests
// bounded only by their context.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: max(timeout, 0)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListExperiences calls GET /experiences.
func (c *Client) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	var out []model.Experience
	if err := c.do(ctx, call{method: http.MethodGet, path: "/experiences", fallback: msgListExperiences}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Experience{}
	}
	return out, nil
}

// GetExperience calls GET /experiences/{id}.
func (c *Client) GetExperience(ctx context.Context, id string) (*model.Experience, error) {
	var out model.Experience
	path := "/experiences/" + url.PathEscape(id)
	if err := c.do(ctx, call{method: http.MethodGet, path: path, fallback: msgGetExperience}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidatePromo calls POST /promo/validate with {code, amount}.
func (c *Client) ValidatePromo(ctx context.Context, code string, amount int) (*model.PromoValidation, error) {
	var out model.PromoValidation
	req := call{
		method:        http.MethodPost,
		path:          "/promo/validate",
		body:          model.PromoRequest{Code: code, Amount: amount},
		fallback:      msgValidatePromo,
		remoteMessage: true,
	}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBooking calls POST /bookings.
func (c *Client) CreateBooking(ctx context.Context, booking model.BookingRequest) (*model.BookingReceipt, error) {
	var out model.BookingReceipt
	req := call{
		method:        http.MethodPost,
		path:          "/bookings",
		body:          booking,
		fallback:      msgCreateBooking,
		remoteMessage: true,
	}
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type call struct {
	method string
	path   string
	body   any
	// fallback is the error message when the service gives none.
	fallback string
	// remoteMessage surfaces the {"message"} of a failed response.  The
	// catalog reads always report the fallback instead.
	remoteMessage bool
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	var body io.Reader
	if cl.body != nil {
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", cl.method, cl.path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", cl.method, cl.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	} else {
		req.Header.Set("Cache-Control", "no-store")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: cl.method + " " + cl.path, Message: cl.fallback, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp, cl.fallback, cl.remoteMessage)
	}
	op := cl.method + " " + cl.path
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Message: cl.fallback, Err: fmt.Errorf("read response: %w", err)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// The remote side may already have acted (a booking was created), so
		// keep what it said for reconciliation.
		log.Printf("client: undecodable %d response to %s: %v; body: %s", resp.StatusCode, op, err, truncate(raw, maxLoggedBody))
		return &TransportError{Op: op, Message: cl.fallback, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "...(truncated)"
}

func newAPIError(resp *http.Response, fallback string, remoteMessage bool) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Message: fallback}
	if !remoteMessage {
		return apiErr
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	}
	return apiErr
}
