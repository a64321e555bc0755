package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-fnaform/pkg/prediction"
)

const (
	// DefaultBaseURL points at the prediction service started locally.
	DefaultBaseURL = "http://127.0.0.1:8000"
	// DefaultTimeout bounds a single round trip when no timeout is configured.
	DefaultTimeout = 10 * time.Second

	predictPath = "/predict"
	healthPath  = "/health"
)

var (
	// ErrUnexpectedStatus wraps any non-2xx response.
	ErrUnexpectedStatus = errors.New("client: unexpected status")
	// ErrUnhealthy is returned when /health answers with a status other than "ok".
	ErrUnhealthy = errors.New("client: service unhealthy")
)

// Client talks to the prediction service over HTTP/JSON.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
}

// Ensure the client satisfies the predictor seam used by the controller.
var _ prediction.Predictor = (*Client)(nil)

// New constructs a client for baseURL (scheme and host required).
func New(baseURL string, options ...Option) (*Client, error) {
	parsed, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: http.DefaultClient,
		timeout:    DefaultTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// BaseURL reports the configured service root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Predict posts payload to /predict and decodes the classification.
func (c *Client) Predict(ctx context.Context, payload prediction.Payload) (prediction.Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return prediction.Result{}, fmt.Errorf("client: encode payload: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(predictPath), bytes.NewReader(body))
	if err != nil {
		return prediction.Result{}, fmt.Errorf("client: predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return prediction.Result{}, fmt.Errorf("client: predict: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return prediction.Result{}, fmt.Errorf("client: predict: %w %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var result prediction.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return prediction.Result{}, fmt.Errorf("client: decode prediction: %w", err)
	}
	return result, nil
}

// Health probes /health and expects {"status":"ok"}.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(healthPath), nil)
	if err != nil {
		return fmt.Errorf("client: health request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: health: %w", err)
	}
	defer drain(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("client: health: %w %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("client: decode health: %w", err)
	}
	if !strings.EqualFold(payload.Status, "ok") {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, payload.Status)
	}
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.JoinPath(path).String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New("client: base url is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("client: base url %q must use http or https", raw)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("client: base url %q has no host", raw)
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed, nil
}

func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}
