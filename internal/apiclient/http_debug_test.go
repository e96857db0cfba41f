package apiclient

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactAuthorization(t *testing.T) {
	dump := []byte("GET /api/products HTTP/1.1\r\nHost: example.com\r\nAuthorization: Bearer abc123\r\nAccept: application/json\r\n\r\n")

	out := string(redactAuthorization(dump))

	assert.NotContains(t, out, "abc123")
	assert.Contains(t, out, "Authorization: [REDACTED]")
	assert.Contains(t, out, "Accept: application/json")
}

func TestDebugTransport_LogsWithoutToken(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) { return okResponse(`{"products":[]}`), nil })

	c, err := New("http://example.com",
		WithTracker(&Tracker{}),
		WithLogger(logger),
		WithHTTPClient(&http.Client{Transport: rt}),
		WithTokenSource(staticToken("abc123")),
		WithDebugLogging(true),
	)
	require.NoError(t, err)

	_, err = c.Do(context.Background(), http.MethodGet, "/products", nil, nil)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "HTTP request")
	assert.Contains(t, buf.String(), "HTTP response")
	assert.NotContains(t, buf.String(), "abc123")
}

func TestDebugTransport_ErrorPath(t *testing.T) {
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) { return nil, context.DeadlineExceeded })
	c := newTestClient(t, "http://example.com", WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))

	_, err := c.Do(context.Background(), http.MethodGet, "/products", nil, nil)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedactSecrets(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    string
		notWant string
	}{
		{name: "login body", in: `{"username":"admin","password":"s3cr\"et"}`, want: `{"username":"admin","password":"[REDACTED]"}`, notWant: "s3cr"},
		{name: "token response", in: `{"token": "eyJhbGci.x.y","expiresAt":"2026-01-01T00:00:00Z"}`, want: `{"token": "[REDACTED]","expiresAt":"2026-01-01T00:00:00Z"}`, notWant: "eyJhbGci"},
		{name: "untouched", in: `{"title":"Desk Lamp"}`, want: `{"title":"Desk Lamp"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := string(redactSecrets([]byte(tc.in)))
			assert.Equal(t, tc.want, out)
			if tc.notWant != "" {
				assert.NotContains(t, out, tc.notWant)
			}
		})
	}
}

func TestDebugTransport_LoginBodiesRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return okResponse(`{"token":"issued-jwt-value","expiresAt":"2026-01-01T00:00:00Z"}`), nil
	})
	c := newTestClient(t, "http://example.com", WithLogger(logger), WithHTTPClient(&http.Client{Transport: rt}), WithDebugLogging(true))

	body := map[string]string{"username": "admin", "password": "hunter2"}
	_, err := c.Do(context.Background(), http.MethodPost, "/auth/login", body, nil)

	require.NoError(t, err)
	logs := buf.String()
	assert.Contains(t, logs, "HTTP request")
	assert.NotContains(t, logs, "hunter2")
	assert.NotContains(t, logs, "issued-jwt-value")
	assert.Contains(t, logs, "[REDACTED]")
}
