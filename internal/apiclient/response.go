package apiclient

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ErrEmptyBody is returned by Decode when there is nothing to decode.
var ErrEmptyBody = errors.New("apiclient: empty response body")

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(r.Body, v)
}

// Empty reports whether the response carried no body.
func (r *Response) Empty() bool { return len(r.Body) == 0 }
