// Package apiclient is the single configured HTTP client every screen uses to
// reach the remote API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout applies when Config.Timeout is zero.
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"

	maxBodyBytes = 8 << 20
)

// TokenSource yields the persisted bearer token, if any.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Config configures a Client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Transport overrides http.DefaultTransport. Used by tests.
	Transport http.RoundTripper
}

// Client sends JSON requests to the remote API. It is safe for concurrent
// use; the only mutable state is the default bearer header.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
	userAgent  string

	mu     sync.RWMutex
	bearer string

	validate *validator.Validate
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  Metrics
}

// New builds a Client. tokens may be nil, in which case the default bearer
// is sent as is.
func New(cfg Config, tokens TokenSource, logger *slog.Logger, tracer trace.Tracer, metrics Metrics) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL scheme %q", base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("apiclient")
	}
	if metrics == nil {
		metrics = NewNoop()
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "esportivo-client/1.0"
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout, Transport: cfg.Transport},
		tokens:     tokens,
		userAgent:  userAgent,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logger,
		tracer:     tracer,
		metrics:    metrics,
	}, nil
}

// SetBearer sets the default Authorization credential.
func (c *Client) SetBearer(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bearer = token
}

// ClearBearer removes the default Authorization credential.
func (c *Client) ClearBearer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bearer = ""
}

// Bearer returns the default credential.
func (c *Client) Bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bearer
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends one request. Failures are never retried: network errors,
// timeouts and non-2xx responses all come back to the caller.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resource := resourceOf(path)
	ctx, span := c.tracer.Start(ctx, "APIClient."+method, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", path),
	))
	defer span.End()

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		span.RecordError(err)
		return err
	}
	c.authorize(ctx, req)
	requestID := req.Header.Get(RequestIDHeader)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordRequest(method, resource, 0, time.Since(start))
		err = c.transportError(method, path, err)
		c.logger.ErrorContext(ctx, "API request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	c.metrics.RecordRequest(method, resource, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if err == nil && len(payload) > maxBodyBytes {
		err = fmt.Errorf("%s %s: %w", method, path, ErrResponseTooLarge)
	} else if err != nil {
		err = c.transportError(method, path, fmt.Errorf("failed to read response: %w", err))
	}
	if err != nil {
		c.logger.ErrorContext(ctx, "API response could not be read",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := c.inspect(ctx, req, resp, payload); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		err = fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, method, path, err)
		span.RecordError(err)
		return err
	}
	if err := validateResponse(c.validate, out); err != nil {
		err = fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, method, path, err)
		c.logger.WarnContext(ctx, "API response failed validation",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		span.RecordError(err)
		return err
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if bearer := c.Bearer(); bearer != "" {
		setBearer(req, bearer)
	}
	return req, nil
}

// authorize is the request interceptor: the persisted token, when present,
// is attached as the bearer credential. Without a persisted token the request
// goes out anonymous, whatever the default header holds.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, ok := c.tokens.Token(ctx)
	if !ok {
		req.Header.Del("Authorization")
		return
	}
	setBearer(req, token)
}

// inspect is the response interceptor: non-2xx responses are logged and
// returned as *APIError with the payload untouched.
func (c *Client) inspect(ctx context.Context, req *http.Request, resp *http.Response, payload []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Method:     req.Method,
		Path:       req.URL.Path,
		RequestID:  req.Header.Get(RequestIDHeader),
		Body:       payload,
	}
	c.logger.WarnContext(ctx, "API responded with error status",
		slog.String("method", apiErr.Method),
		slog.String("path", apiErr.Path),
		slog.Int("status", apiErr.StatusCode),
		slog.String("request_id", apiErr.RequestID),
		slog.String("server_message", apiErr.Message()),
	)
	return apiErr
}

func (c *Client) transportError(method, path string, err error) error {
	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrTimeout, err)
	}
	return fmt.Errorf("%s %s: %w", method, path, err)
}

func setBearer(req *http.Request, token string) {
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
}

// resourceOf returns the first path segment, used as a low-cardinality
// metrics label.
func resourceOf(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "admin" {
		rest := strings.TrimPrefix(strings.TrimPrefix(path, "/"), "admin/")
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[:i]
		}
		return "admin/" + rest
	}
	return trimmed
}

// Requester is the subset of Client the screen services depend on.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

var _ Requester = (*Client)(nil)
