// Package apiclient is the single entry point for outbound calls to the catalog backend.
//
// A Client is bound to one origin. Every call made through Do is counted on a Tracker for its whole
// lifetime, carries the bearer token read from a TokenSource when there is one, and hands the
// response or error back to the caller unchanged.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abgdnv/gocommerce-admin/pkg/web"
	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// Client issues requests against a single catalog origin and counts each one on its Tracker.
type Client struct {
	origin  *url.URL
	baseURL string
	http    *http.Client
	tracker *Tracker
	tokens  TokenSource
	logger  *slog.Logger

	tokenObserver func(context.Context, error)
	timeout       time.Duration
	userAgent     string
	debug         bool
}

// New constructs a Client bound to baseURL for its whole lifetime.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("apiclient: base URL must be absolute: %q", baseURL)
	}

	c := &Client{
		origin:  &url.URL{Scheme: u.Scheme, Host: u.Host},
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{},
		tracker: defaultTracker,
		tokens:  noToken,
		logger:  slog.Default(),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("apiclient: %w", err)
		}
	}
	c.logger = c.logger.With("component", "apiclient")
	if c.timeout > 0 {
		c.http.Timeout = c.timeout
	} else if c.http.Timeout == 0 {
		c.http.Timeout = defaultTimeout
	}
	c.wrapTransport()

	return c, nil
}

// wrapTransport installs, from the outside in: bearer token injection, optional debug dumps, then
// the configured base transport.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if c.debug {
		base = &debugTransport{base: base, logger: c.logger}
	}
	c.http.Transport = &bearerTransport{
		base:    base,
		origin:  c.origin,
		tokens:  c.tokens,
		onError: tokenErrorHandler(c.logger, c.tokenObserver),
	}
}

// BaseURL returns the origin the client is bound to.
func (c *Client) BaseURL() string { return c.baseURL }

// IsLoading reports whether any request counted on this client's tracker is outstanding.
func (c *Client) IsLoading() bool { return c.tracker.Busy() }

// Tracker returns the tracker this client counts its requests on.
func (c *Client) Tracker() *Tracker { return c.tracker }

// Do issues one HTTP call to path below the client's origin.
//
// body, when not nil, is sent as JSON. header values are added to the request; the Authorization
// header is owned by the token source. The request is counted as in flight from the moment Do is
// entered until it returns, whatever stage fails. Transport errors are returned as produced by
// net/http; a non-2xx status is returned as *StatusError. Nothing is retried.
func (c *Client) Do(ctx context.Context, method, path string, body any, header http.Header) (*Response, error) {
	release := c.tracker.Begin()
	defer release()

	reqID := header.Get(web.RequestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	ctx = web.WithRequestID(ctx, reqID)

	req, err := c.newRequest(ctx, method, path, body, header)
	if err != nil {
		requestsTotal.WithLabelValues(method, outcomeRequestError).Inc()
		return nil, err
	}
	req.Header.Set(web.RequestIDHeader, reqID)

	c.logger.DebugContext(ctx, "Dispatching request", "method", method, "path", path, "in_flight", c.tracker.InFlight())
	start := time.Now()

	httpResp, err := c.http.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(method, outcomeTransportError).Inc()
		c.logger.DebugContext(ctx, "Request failed", "method", method, "path", path, "error", err)
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(method, outcomeTransportError).Inc()
		return nil, err
	}
	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
	}
	c.logger.DebugContext(ctx, "Request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", float64(time.Since(start).Nanoseconds())/1e6,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		requestsTotal.WithLabelValues(method, outcomeHTTPError).Inc()
		return nil, &StatusError{Method: method, Path: path, Response: resp}
	}
	requestsTotal.WithLabelValues(method, outcomeSuccess).Inc()
	return resp, nil
}

// newRequest builds the outbound request for path, encoding body as JSON.
func (c *Client) newRequest(ctx context.Context, method, path string, body any, header http.Header) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Del("Authorization")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}
