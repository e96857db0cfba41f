package tokenstore

import (
	"context"
	"errors"
)

// DefaultKey is the key the auth token is stored under.
const DefaultKey = "token"

// Source reads the bearer token from a Store on every call, so a login or logout by another
// process takes effect on the next request. It satisfies apiclient.TokenSource.
type Source struct {
	Store Store
	Key   string
}

// Token returns the stored token. A missing key yields an empty token and no error.
func (s Source) Token(ctx context.Context) (string, error) {
	v, err := s.Store.Get(ctx, s.key())
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

// Save stores token under the source key.
func (s Source) Save(ctx context.Context, token string) error {
	return s.Store.Set(ctx, s.key(), token)
}

// Clear removes the stored token.
func (s Source) Clear(ctx context.Context) error {
	return s.Store.Delete(ctx, s.key())
}

func (s Source) key() string {
	if s.Key == "" {
		return DefaultKey
	}
	return s.Key
}
