package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/abgdnv/gocommerce-admin/pkg/config"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// ErrInvalidCredentials is returned by Login when the username or password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Verifier checks a bearer token and returns its parsed claims.
type Verifier interface {
	Verify(ctx context.Context, tokenString string) (jwt.Token, error)
}

// HMACAuthority issues and verifies HS256 tokens signed with a shared secret.
type HMACAuthority struct {
	key      []byte
	issuer   string
	ttl      time.Duration
	username string
	password string
	now      func() time.Time
}

// NewHMACAuthority creates a new HMACAuthority instance.
func NewHMACAuthority(cfg config.AuthConfig) (*HMACAuthority, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &HMACAuthority{
		key:      []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		ttl:      cfg.TTL,
		username: cfg.Username,
		password: cfg.Password,
		now:      time.Now,
	}, nil
}

// Login checks the admin credentials and issues a signed token for the user.
func (a *HMACAuthority) Login(username, password string) (string, time.Time, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	if userOK&passOK != 1 {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return a.Issue(username)
}

// Issue signs a token for subject that expires after the configured TTL.
func (a *HMACAuthority) Issue(subject string) (string, time.Time, error) {
	now := a.now()
	expires := now.Add(a.ttl)
	token, err := jwt.NewBuilder().
		JwtID(uuid.NewString()).
		Subject(subject).
		Issuer(a.issuer).
		IssuedAt(now).
		Expiration(expires).
		Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to build token: %w", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), a.key))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), expires, nil
}

func (a *HMACAuthority) Verify(_ context.Context, tokenString string) (jwt.Token, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256(), a.key),
		// Standard validation checks - expiration, not before, etc.
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(a.now)),
		jwt.WithIssuer(a.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	return token, nil
}
