package config

import (
	"path/filepath"
	"time"
)

// Config is the complete txsplain configuration.
type Config struct {
	Rippled    RippledConfig    `toml:"rippled" mapstructure:"rippled"`
	Identity   IdentityConfig   `toml:"identity" mapstructure:"identity"`
	AliasCache AliasCacheConfig `toml:"alias_cache" mapstructure:"alias_cache"`
	Bot        BotConfig        `toml:"bot" mapstructure:"bot"`
	Metrics    MetricsConfig    `toml:"metrics" mapstructure:"metrics"`
	Log        LogConfig        `toml:"log" mapstructure:"log"`

	configPath string `toml:"-" mapstructure:"-"`
}

// RippledConfig points at the server that supplies ledger data.
type RippledConfig struct {
	URL string `toml:"url" mapstructure:"url"`
	// Transport is "http" or "ws".
	Transport  string        `toml:"transport" mapstructure:"transport"`
	Timeout    time.Duration `toml:"timeout" mapstructure:"timeout"`
	MaxRetries int           `toml:"max_retries" mapstructure:"max_retries"`
	// Binary requests transactions as binary blobs and decodes them locally.
	Binary          bool `toml:"binary" mapstructure:"binary"`
	LedgerCacheSize int  `toml:"ledger_cache_size" mapstructure:"ledger_cache_size"`
}

// IdentityConfig describes the alias lookup service.
type IdentityConfig struct {
	Enabled           bool          `toml:"enabled" mapstructure:"enabled"`
	URL               string        `toml:"url" mapstructure:"url"`
	Timeout           time.Duration `toml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `toml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `toml:"burst" mapstructure:"burst"`
	MaxRetries        int           `toml:"max_retries" mapstructure:"max_retries"`
	// Concurrency bounds parallel lookups while prefetching.
	Concurrency int `toml:"concurrency" mapstructure:"concurrency"`
}

// AliasCacheConfig selects where resolved aliases persist between runs.
type AliasCacheConfig struct {
	// Backend is one of bbolt, pebble, leveldb, sqlite, postgres or memory.
	Backend string `toml:"backend" mapstructure:"backend"`
	Path    string `toml:"path" mapstructure:"path"`
	DSN     string `toml:"dsn" mapstructure:"dsn"`
}

type BotConfig struct {
	Token         string        `toml:"token" mapstructure:"token"`
	CommandPrefix string        `toml:"command_prefix" mapstructure:"command_prefix"`
	ChannelID     string        `toml:"channel_id" mapstructure:"channel_id"`
	ExplorerURL   string        `toml:"explorer_url" mapstructure:"explorer_url"`
	Timeout       time.Duration `toml:"timeout" mapstructure:"timeout"`
}

// MetricsConfig enables the Prometheus listener when Listen is set.
type MetricsConfig struct {
	Listen string `toml:"listen" mapstructure:"listen"`
}

type LogConfig struct {
	Level       string `toml:"level" mapstructure:"level"`
	Development bool   `toml:"development" mapstructure:"development"`
}

// GetConfigPath returns the file the configuration was read from, or ""
// when only defaults and the environment were used.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// DefaultConfigDir is where LoadConfig looks when no file is given.
func DefaultConfigDir(home string) string {
	return filepath.Join(home, ".config", "txsplain")
}
