// Package config holds the catalogadmin command-line configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/abgdnv/gocommerce-admin/pkg/config"
	"github.com/abgdnv/gocommerce-admin/pkg/config/configloader"
)

// ServiceName is also the environment prefix: CATALOGADMIN_API_BASEURL and so on.
const ServiceName = "catalogadmin"

// defaultBaseURL can be overridden at build time:
//
//	go build -ldflags "-X github.com/abgdnv/gocommerce-admin/internal/config.defaultBaseURL=http://localhost:8080/api"
var defaultBaseURL = "https://mongonode-production.up.railway.app/api"

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	API        config.APIConfig        `koanf:"api"`
	TokenStore config.TokenStoreConfig `koanf:"tokenstore"`
	Log        config.LogConfig        `koanf:"log"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.API.String())
	b.WriteString(c.TokenStore.String())
	b.WriteString(c.Log.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.TokenStore.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return nil
}

// Defaults returns the lowest-priority values, keyed by koanf path.
func Defaults() map[string]any {
	return map[string]any{
		"api.baseurl":             defaultBaseURL,
		"api.timeout":             "30s",
		"api.useragent":           "catalogadmin/1.0",
		"tokenstore.driver":       config.TokenStoreSQLite,
		"tokenstore.key":          "token",
		"tokenstore.sqlite.path":  defaultStorePath(),
		"tokenstore.redis.prefix": "catalogadmin:",
		"log.level":               "warn",
	}
}

// defaultStorePath puts the token database under the user's config directory, falling back to the
// working directory when that cannot be determined.
func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".catalogadmin", "token.db")
	}
	return filepath.Join(dir, ServiceName, "token.db")
}

// Load reads the configuration. configFile may be empty to use config.yaml in the working directory.
func Load(configFile string) (*Config, error) {
	return configloader.Load[*Config](ServiceName,
		configloader.WithDefaults(Defaults()),
		configloader.WithConfigFile(configFile),
	)
}
