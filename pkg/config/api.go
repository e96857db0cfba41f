package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// APIConfig describes the remote catalog backend the admin client talks to.
type APIConfig struct {
	BaseURL   string        `koanf:"baseurl"`
	Timeout   time.Duration `koanf:"timeout"`
	Debug     bool          `koanf:"debug"`
	UserAgent string        `koanf:"useragent"`
}

// String returns a string representation of the APIConfig.
func (c *APIConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- API ---\n")
	b.WriteString(fmt.Sprintf("  baseurl: %s\n", c.BaseURL))
	b.WriteString(fmt.Sprintf("  timeout: %v\n", c.Timeout))
	b.WriteString(fmt.Sprintf("  debug: %t\n", c.Debug))
	b.WriteString(fmt.Sprintf("  useragent: %s\n", c.UserAgent))
	return b.String()
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("api base URL is not configured")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api base URL must be http or https: %s", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("api timeout must be greater than 0")
	}
	return nil
}
