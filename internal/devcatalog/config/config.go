package config

import (
	"strings"

	"github.com/abgdnv/gocommerce-admin/pkg/config"
	"github.com/abgdnv/gocommerce-admin/pkg/config/configloader"
)

// ServiceName is also the environment prefix: DEVCATALOG_SERVER_PORT and so on.
const ServiceName = "devcatalog"

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig          `koanf:"server"`
	Log        config.LogConfig           `koanf:"log"`
	Debug      config.DebugServerConfig `koanf:"debug"`
	Shutdown   config.ShutdownConfig      `koanf:"shutdown"`
	Auth       config.AuthConfig          `koanf:"auth"`
	Seed       bool                       `koanf:"seed"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Auth.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.Debug.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Debug.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return nil
}

// Defaults returns values good enough to run the backend locally with no config file.
// The secret and password are for local development only.
func Defaults() map[string]any {
	return map[string]any{
		"server.port":               8080,
		"server.maxheaderbytes":     1 << 20,
		"server.timeout.read":       "10s",
		"server.timeout.write":      "10s",
		"server.timeout.idle":       "60s",
		"server.timeout.readheader": "5s",
		"log.level":                 "info",
		"debug.enabled":             false,
		"debug.addr":                "localhost:6060",
		"shutdown.timeout":          "10s",
		"auth.secret":               "devcatalog-local-development-secret-key",
		"auth.issuer":               "devcatalog",
		"auth.ttl":                  "24h",
		"auth.username":             "admin",
		"auth.password":             "admin",
		"seed":                      true,
	}
}

// Load reads the configuration. configFile may be empty to use config.yaml in the working directory.
func Load(configFile string) (*Config, error) {
	return configloader.Load[*Config](ServiceName,
		configloader.WithDefaults(Defaults()),
		configloader.WithConfigFile(configFile),
	)
}
