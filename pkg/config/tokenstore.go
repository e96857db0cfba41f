package config

import (
	"fmt"
	"strings"
)

const (
	TokenStoreSQLite = "sqlite"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

// TokenStoreConfig selects and configures the persistent key-value store holding the auth token.
type TokenStoreConfig struct {
	Driver string `koanf:"driver"`
	Key    string `koanf:"key"`
	SQLite struct {
		Path string `koanf:"path"`
	} `koanf:"sqlite"`
	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
		Prefix   string `koanf:"prefix"`
	} `koanf:"redis"`
}

// String returns a string representation of the TokenStoreConfig.
func (c *TokenStoreConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Token Store ---\n")
	b.WriteString(fmt.Sprintf("  driver: %s\n", c.Driver))
	b.WriteString(fmt.Sprintf("  key: %s\n", c.Key))
	switch c.Driver {
	case TokenStoreSQLite:
		b.WriteString(fmt.Sprintf("  sqlite.path: %s\n", c.SQLite.Path))
	case TokenStoreRedis:
		b.WriteString(fmt.Sprintf("  redis.addr: %s\n", c.Redis.Addr))
		b.WriteString(fmt.Sprintf("  redis.db: %d\n", c.Redis.DB))
		b.WriteString(fmt.Sprintf("  redis.prefix: %s\n", c.Redis.Prefix))
	}
	return b.String()
}

func (c *TokenStoreConfig) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("tokenstore.key must not be empty")
	}
	switch c.Driver {
	case TokenStoreSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("tokenstore.sqlite.path is not configured")
		}
	case TokenStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("tokenstore.redis.addr is not configured")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("tokenstore.redis.db must not be negative")
		}
	case TokenStoreMemory:
	default:
		return fmt.Errorf("unknown tokenstore driver: %q", c.Driver)
	}
	return nil
}
