package apiclient

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"os"
	"regexp"
)

// debugTransport logs every request and response dump at DEBUG level.
//
// It sits beneath the bearer transport, so the Authorization header is present on the request;
// it is redacted from the dump before logging, as are password and token fields in JSON bodies. Enable with WithDebugLogging or
// CATALOGADMIN_DEBUG=true.
type debugTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.logger.DebugContext(ctx, "HTTP request", "method", req.Method, "url", req.URL.String(), "request_dump", string(redactSecrets(redactAuthorization(reqDump))))
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		dt.logger.DebugContext(ctx, "HTTP request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.logger.DebugContext(ctx, "HTTP response", "method", req.Method, "url", req.URL.String(), "status_code", resp.StatusCode, "response_dump", string(redactSecrets(respDump)))
	}
	return resp, nil
}

var authorizationPrefix = []byte("Authorization:")

// redactAuthorization replaces the value of the Authorization line of a request dump.
func redactAuthorization(dump []byte) []byte {
	lines := bytes.Split(dump, []byte("\r\n"))
	for i, line := range lines {
		if len(line) >= len(authorizationPrefix) && bytes.EqualFold(line[:len(authorizationPrefix)], authorizationPrefix) {
			lines[i] = []byte("Authorization: [REDACTED]")
		}
	}
	return bytes.Join(lines, []byte("\r\n"))
}

var secretField = regexp.MustCompile(`"(password|token)"(\s*):(\s*)"(?:[^"\\]|\\.)*"`)

// redactSecrets masks the values of "password" and "token" JSON string fields in a dump.
func redactSecrets(dump []byte) []byte {
	return secretField.ReplaceAll(dump, []byte(`"$1"$2:$3"[REDACTED]"`))
}

// debugLoggingRequested checks whether HTTP debug logging is switched on through the environment.
func debugLoggingRequested() bool {
	return os.Getenv("CATALOGADMIN_DEBUG") == "true"
}
