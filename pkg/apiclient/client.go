// Package apiclient is a thin JSON HTTP client with a deadline that spans
// retries. Every request gets an overall timeout; transient failures are
// retried with exponential backoff until the deadline or the retry budget
// runs out, and failures surface as *Error with an HTTP-like status code.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kishorkishor/storefront-backend/pkg/logger"
)

const (
	// DefaultTimeout bounds one logical request including all retries.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3

	// retryBaseDelay is the first backoff interval; it doubles per attempt.
	retryBaseDelay = 1 * time.Second
)

// Error is the failure shape for every request. Status carries the upstream
// HTTP status, 408 for a client-side timeout, or 0 when the request never
// produced a response (DNS failure, refused connection, closed socket).
type Error struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// IsTimeout reports whether err is a request that ran out its deadline.
func IsTimeout(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusRequestTimeout
}

// IsNetwork reports whether err is a transport-level failure with no
// upstream response.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 0
}

// Client issues JSON requests against a single base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	headers    map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the overall per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxRetries overrides the retry budget.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithRetryBaseDelay overrides the first backoff interval.
func WithRetryBaseDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithHTTPClient swaps the underlying transport. Tests inject
// httptest-backed clients through this.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
		retryDelay: retryBaseDelay,
		headers:    map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET and decodes the JSON response body into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE and decodes the response into out.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = data
	}

	// One deadline for the whole exchange: retries and backoff sleeps all
	// count against it.
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + path
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay << (attempt - 1)
			logger.Warn("Retrying request", map[string]interface{}{
				"method":  method,
				"url":     url,
				"attempt": attempt,
				"delay":   delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return timeoutError(method, url)
			}
		}

		err := c.attempt(ctx, method, url, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return timeoutError(method, url)
		}
	}
	return lastErr
}

func (c *Client) attempt(ctx context.Context, method, url string, payload []byte, out interface{}) error {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return &Error{Status: 0, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return timeoutError(method, url)
		}
		return &Error{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: 0, Message: err.Error()}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &Error{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("%s %s returned %s", method, url, resp.Status),
			Data:    json.RawMessage(data),
		}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("failed to decode response body: %v", err),
		}
	}
	return nil
}

func timeoutError(method, url string) error {
	return &Error{
		Status:  http.StatusRequestTimeout,
		Message: fmt.Sprintf("%s %s timed out", method, url),
	}
}

// retryable reports whether a failure is worth another attempt: network
// errors and 5xx responses are transient, everything else is final.
func retryable(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status == http.StatusRequestTimeout {
		return false
	}
	return apiErr.Status == 0 || apiErr.Status >= http.StatusInternalServerError
}
