package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// TokenSource yields the bearer credential for the next request. An empty token with a nil error
// means the request is sent without credentials.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a plain function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

var noToken = TokenSourceFunc(func(context.Context) (string, error) { return "", nil })

// bearerTransport wraps an http.RoundTripper to add the Authorization header from a TokenSource.
//
// Token lookup is fail-open: when the source errors the request still goes out, just without
// credentials, and the failure is handed to onError. The token is only attached to requests for
// origin; redirect hops to any other scheme or host go out without it.
type bearerTransport struct {
	base    http.RoundTripper
	origin  *url.URL
	tokens  TokenSource
	onError func(ctx context.Context, err error)
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !sameOrigin(t.origin, req.URL) {
		return t.base.RoundTrip(req)
	}
	token, err := t.tokens.Token(req.Context())
	if err != nil {
		t.onError(req.Context(), err)
		return t.base.RoundTrip(req)
	}
	if token == "" {
		return t.base.RoundTrip(req)
	}
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(cloned)
}

func sameOrigin(origin, target *url.URL) bool {
	if origin == nil || target == nil {
		return false
	}
	return strings.EqualFold(origin.Scheme, target.Scheme) && strings.EqualFold(origin.Host, target.Host)
}

// tokenErrorHandler builds the onError hook: log, count, then notify the optional observer.
func tokenErrorHandler(logger *slog.Logger, observer func(context.Context, error)) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		tokenLookupFailuresTotal.Inc()
		logger.WarnContext(ctx, "Token lookup failed, sending request without credentials", "error", err)
		if observer != nil {
			observer(ctx, err)
		}
	}
}
