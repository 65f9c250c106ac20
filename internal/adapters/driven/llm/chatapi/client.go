// Package chatapi is the HTTP plumbing shared by the LLM adapters: JSON
// requests, provider error extraction and retries for rate limits and
// server errors.
package chatapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

// Defaults.
const (
	DefaultTimeout    = 120 * time.Second
	DefaultMaxRetries = 2

	baseRetryWait = 500 * time.Millisecond
	maxRetryWait  = 10 * time.Second
	maxErrorBody  = 512
)

// Config configures a Client.
type Config struct {
	// Provider labels errors ("openai", "z.ai", "anthropic", "ollama").
	Provider string

	// BaseURL is prefixed to every request path.
	BaseURL string

	// Header is sent with every request (auth, API version).
	Header http.Header

	// Timeout bounds each attempt. Zero uses DefaultTimeout.
	Timeout time.Duration

	// MaxRetries bounds retries of 429 and 5xx replies.
	// Zero uses DefaultMaxRetries; negative disables retries.
	MaxRetries int
}

// Client sends JSON requests to one provider.
type Client struct {
	http     *http.Client
	provider string
	baseURL  string
	header   http.Header
	retries  int
}

// New creates a client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	switch {
	case cfg.MaxRetries == 0:
		cfg.MaxRetries = DefaultMaxRetries
	case cfg.MaxRetries < 0:
		cfg.MaxRetries = 0
	}
	return &Client{
		http:     &http.Client{Timeout: cfg.Timeout},
		provider: cfg.Provider,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		header:   cfg.Header.Clone(),
		retries:  cfg.MaxRetries,
	}
}

// Provider returns the provider label.
func (c *Client) Provider() string {
	return c.provider
}

// APIError is an error reply from the provider.
type APIError struct {
	Provider   string
	Status     int
	Message    string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Status == http.StatusOK {
		return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.Status, e.Message)
}

// Temporary reports whether the request may succeed if retried.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// Unwrap maps rate limits and server errors to domain.ErrLLMUnavailable.
func (e *APIError) Unwrap() error {
	if e.Temporary() {
		return domain.ErrLLMUnavailable
	}
	return nil
}

// Post sends in as JSON to path and decodes the reply into out.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	data, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.provider, err)
	}
	return nil
}

// Get requests path and decodes the reply into out. A nil out discards it.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil || out == nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.provider, err)
	}
	return nil
}

// do runs the request, retrying temporary failures with exponential
// backoff. A Retry-After from the provider replaces the next interval.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	policy := &retryPolicy{next: newBackOff()}
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.retries)), ctx)

	return backoff.RetryNotifyWithData(func() ([]byte, error) {
		policy.retryAfter = 0
		data, err := c.once(ctx, method, path, body)
		if err == nil {
			return data, nil
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Temporary() {
			return nil, backoff.Permanent(err)
		}
		policy.retryAfter = apiErr.RetryAfter
		return nil, err
	}, b, func(err error, wait time.Duration) {
		logger.Debug("%s: %v, retrying in %s", c.provider, err, wait)
	})
}

// newBackOff doubles from baseRetryWait up to maxRetryWait without jitter.
func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = baseRetryWait
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = maxRetryWait
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// retryPolicy prefers the provider's Retry-After over the computed
// interval. The exponential schedule still advances either way.
type retryPolicy struct {
	next       backoff.BackOff
	retryAfter time.Duration
}

func (p *retryPolicy) NextBackOff() time.Duration {
	d := p.next.NextBackOff()
	if d != backoff.Stop && p.retryAfter > 0 {
		return p.retryAfter
	}
	return d
}

func (p *retryPolicy) Reset() {
	p.retryAfter = 0
	p.next.Reset()
}

func (c *Client) once(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.header {
		req.Header[k] = v
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: failed to connect to %s: %v", domain.ErrLLMUnavailable, c.provider, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", c.provider, err)
	}

	msg, hasErr := errorMessage(data)
	if resp.StatusCode != http.StatusOK || hasErr {
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		if resp.StatusCode == http.StatusOK && msg == http.StatusText(http.StatusOK) {
			msg = "unexpected error reply"
		}
		return nil, &APIError{
			Provider:   c.provider,
			Status:     resp.StatusCode,
			Message:    msg,
			RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
		}
	}
	return data, nil
}

// errorMessage extracts the provider's error text. Providers reply with
// {"error": "text"} or {"error": {"message": "text"}}; anything else that
// is not JSON is returned trimmed.
func errorMessage(data []byte) (string, bool) {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return truncate(strings.TrimSpace(string(data))), false
	}
	if len(envelope.Error) == 0 || string(envelope.Error) == "null" {
		return "", false
	}

	var text string
	if json.Unmarshal(envelope.Error, &text) == nil {
		return text, true
	}
	var obj struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	}
	if json.Unmarshal(envelope.Error, &obj) == nil {
		if obj.Message != "" {
			return obj.Message, true
		}
		return obj.Type, true
	}
	return truncate(string(envelope.Error)), true
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody] + "..."
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP
// date. Waits are capped at maxRetryWait.
func retryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if at, err := http.ParseTime(v); err == nil {
		d = time.Until(at)
	}
	if d < 0 {
		return 0
	}
	return min(d, maxRetryWait)
}
