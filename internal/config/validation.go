package config

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap/zapcore"
)

// ValidateConfig checks every section.
func ValidateConfig(config *Config) error {
	if err := config.Rippled.Validate(); err != nil {
		return fmt.Errorf("rippled config validation failed: %w", err)
	}
	if err := config.Identity.Validate(); err != nil {
		return fmt.Errorf("identity config validation failed: %w", err)
	}
	if err := config.AliasCache.Validate(); err != nil {
		return fmt.Errorf("alias_cache config validation failed: %w", err)
	}
	if err := config.Bot.Validate(); err != nil {
		return fmt.Errorf("bot config validation failed: %w", err)
	}
	if err := config.Log.Validate(); err != nil {
		return fmt.Errorf("log config validation failed: %w", err)
	}
	return nil
}

func (c *RippledConfig) Validate() error {
	if c.Transport != "http" && c.Transport != "ws" {
		return fmt.Errorf("transport must be 'http' or 'ws', got: %s", c.Transport)
	}
	schemes := []string{"http", "https"}
	if c.Transport == "ws" {
		schemes = []string{"ws", "wss"}
	}
	if err := validateURL(c.URL, schemes...); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %s", c.Timeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries cannot be negative, got: %d", c.MaxRetries)
	}
	if c.LedgerCacheSize < 0 {
		return fmt.Errorf("ledger_cache_size cannot be negative, got: %d", c.LedgerCacheSize)
	}
	return nil
}

func (c *IdentityConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if err := validateURL(c.URL, "http", "https"); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %s", c.Timeout)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive, got: %g", c.RequestsPerSecond)
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1, got: %d", c.Burst)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got: %d", c.Concurrency)
	}
	return nil
}

func (c *AliasCacheConfig) Validate() error {
	switch c.Backend {
	case "memory":
		return nil
	case "bbolt", "pebble", "leveldb", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("backend %s requires a path", c.Backend)
		}
		return nil
	case "postgres":
		if c.DSN == "" {
			return fmt.Errorf("backend postgres requires a dsn")
		}
		return nil
	}
	return fmt.Errorf("backend must be one of bbolt, pebble, leveldb, sqlite, postgres, memory; got: %s", c.Backend)
}

// Validate does not require a token; only the bot command does.
func (c *BotConfig) Validate() error {
	if strings.TrimSpace(c.CommandPrefix) == "" {
		return fmt.Errorf("command_prefix cannot be empty")
	}
	if c.ExplorerURL != "" {
		if err := validateURL(c.ExplorerURL, "http", "https"); err != nil {
			return fmt.Errorf("explorer_url: %w", err)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %s", c.Timeout)
	}
	return nil
}

func (c *LogConfig) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid level: %w", err)
	}
	return nil
}

func validateURL(raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return nil
		}
	}
	return fmt.Errorf("url %q must use one of %s", raw, strings.Join(schemes, ", "))
}
