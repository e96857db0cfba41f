package config

import (
	"fmt"
	"net"
	"strings"
)

// DebugServerConfig configures the side listener serving pprof and Prometheus metrics.
// Keep it bound to localhost.
type DebugServerConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// String returns a string representation of the debug server configuration.
func (c *DebugServerConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Debug Server ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	if c.Enabled {
		b.WriteString(fmt.Sprintf("  addr: %s\n", c.Addr))
	}
	return b.String()
}

func (c *DebugServerConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" {
		return fmt.Errorf("debug server is enabled but address is not configured")
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("invalid debug server address %q: %w", c.Addr, err)
	}
	return nil
}
