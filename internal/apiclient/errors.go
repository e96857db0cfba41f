package apiclient

import (
	"errors"
	"fmt"
)

// ErrEmptyBaseURL is returned by New when no origin is given.
var ErrEmptyBaseURL = errors.New("apiclient: base URL cannot be empty")

// StatusError is returned for every response outside the 2xx range. The response is kept intact;
// interpreting the status is the caller's business.
type StatusError struct {
	Method   string
	Path     string
	Response *Response
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.Response.StatusCode)
}

// StatusCode extracts the HTTP status from err when it carries a *StatusError.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Response.StatusCode, true
	}
	return 0, false
}
