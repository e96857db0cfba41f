package apiclient

// Functional options that configure the Client during construction.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Transport-related options are recorded here and applied once, after all options ran, so the
// order in which callers pass them does not matter.
type Option func(*Client) error

// WithHTTPClient uses a copy of hc as the underlying client. hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithTokenSource sets where bearer tokens come from. Without it requests carry no credentials.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) error {
		if ts == nil {
			return errors.New("token source must not be nil")
		}
		c.tokens = ts
		return nil
	}
}

// WithTracker counts this client's requests on t instead of the process-wide tracker.
func WithTracker(t *Tracker) Option {
	return func(c *Client) error {
		if t == nil {
			return errors.New("tracker must not be nil")
		}
		c.tracker = t
		return nil
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) error {
		if l == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = l
		return nil
	}
}

// WithTokenErrorObserver registers fn to be told about every failed token lookup.
// The request that hit the failure is still sent, without an Authorization header.
func WithTokenErrorObserver(fn func(ctx context.Context, err error)) Option {
	return func(c *Client) error {
		c.tokenObserver = fn
		return nil
	}
}

// WithDebugLogging logs request and response dumps at DEBUG level when enabled is true.
// Do not enable this option in production: bodies are logged verbatim.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}
