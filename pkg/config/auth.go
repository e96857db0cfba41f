package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthConfig configures token issuing and verification on the development backend.
type AuthConfig struct {
	Secret   string        `koanf:"secret"`
	Issuer   string        `koanf:"issuer"`
	TTL      time.Duration `koanf:"ttl"`
	Username string        `koanf:"username"`
	Password string        `koanf:"password"`
}

// String returns a string representation of the AuthConfig. Secrets are masked.
func (c *AuthConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Auth ---\n")
	b.WriteString(fmt.Sprintf("  secret: %s\n", mask(c.Secret)))
	b.WriteString(fmt.Sprintf("  issuer: %s\n", c.Issuer))
	b.WriteString(fmt.Sprintf("  ttl: %v\n", c.TTL))
	b.WriteString(fmt.Sprintf("  username: %s\n", c.Username))
	b.WriteString(fmt.Sprintf("  password: %s\n", mask(c.Password)))
	return b.String()
}

func (c *AuthConfig) Validate() error {
	if len(c.Secret) < 32 {
		return fmt.Errorf("auth secret must be at least 32 bytes")
	}
	if c.Issuer == "" {
		return fmt.Errorf("auth issuer cannot be empty")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("auth token ttl must be greater than zero")
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("auth username and password must be configured")
	}
	return nil
}

func mask(s string) string {
	if s == "" {
		return "<not configured>"
	}
	return "****"
}
