package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "txsplain.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[rippled]
url = "wss://xrplcluster.com"
transport = "ws"
timeout = "5s"
binary = true

[identity]
enabled = false

[alias_cache]
backend = "pebble"
path = "/tmp/txsplain-test/aliases"

[bot]
token = "secret"
channel_id = "1234"

[metrics]
listen = ":9100"

[log]
level = "debug"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, path, config.GetConfigPath())
	assert.Equal(t, "wss://xrplcluster.com", config.Rippled.URL)
	assert.Equal(t, "ws", config.Rippled.Transport)
	assert.Equal(t, 5*time.Second, config.Rippled.Timeout)
	assert.True(t, config.Rippled.Binary)
	assert.False(t, config.Identity.Enabled)
	assert.Equal(t, "pebble", config.AliasCache.Backend)
	assert.Equal(t, "/tmp/txsplain-test/aliases", config.AliasCache.Path)
	assert.Equal(t, "secret", config.Bot.Token)
	assert.Equal(t, "1234", config.Bot.ChannelID)
	assert.Equal(t, ":9100", config.Metrics.Listen)
	assert.Equal(t, "debug", config.Log.Level)

	// Defaults fill what the file leaves out.
	assert.Equal(t, 3, config.Rippled.MaxRetries)
	assert.Equal(t, 256, config.Rippled.LedgerCacheSize)
	assert.Equal(t, "!", config.Bot.CommandPrefix)
	assert.Equal(t, "https://livenet.xrpl.org/transactions/", config.Bot.ExplorerURL)
}

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Empty(t, config.GetConfigPath())
	assert.Equal(t, "http://s1.ripple.com:51234/", config.Rippled.URL)
	assert.Equal(t, "http", config.Rippled.Transport)
	assert.Equal(t, 20*time.Second, config.Rippled.Timeout)
	assert.True(t, config.Identity.Enabled)
	assert.Equal(t, 8, config.Identity.Concurrency)
	assert.Equal(t, "bbolt", config.AliasCache.Backend)
	assert.NotEmpty(t, config.AliasCache.Path)
	assert.Equal(t, "info", config.Log.Level)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
[bot]
token = "from-file"
`)
	t.Setenv("TXSPLAIN_BOT_TOKEN", "from-env")
	t.Setenv("TXSPLAIN_RIPPLED_MAX_RETRIES", "7")
	t.Setenv("TXSPLAIN_ALIAS_CACHE_BACKEND", "memory")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", config.Bot.Token)
	assert.Equal(t, 7, config.Rippled.MaxRetries)
	assert.Equal(t, "memory", config.AliasCache.Backend)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := writeConfig(t, `
[rippled]
transport = "carrier-pigeon"
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transport")
}

func validConfig() *Config {
	return &Config{
		Rippled: RippledConfig{
			URL:       "http://localhost:5005",
			Transport: "http",
			Timeout:   time.Second,
		},
		Identity: IdentityConfig{
			Enabled:           true,
			URL:               "https://id.example.com",
			Timeout:           time.Second,
			RequestsPerSecond: 1,
			Burst:             1,
			Concurrency:       1,
		},
		AliasCache: AliasCacheConfig{Backend: "memory"},
		Bot:        BotConfig{CommandPrefix: "!", Timeout: time.Second},
		Log:        LogConfig{Level: "warn"},
	}
}

func TestConfigValidation(t *testing.T) {
	require.NoError(t, ValidateConfig(validConfig()))

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"ws url with http transport", func(c *Config) { c.Rippled.URL = "ws://localhost:6006" }},
		{"http url with ws transport", func(c *Config) { c.Rippled.Transport = "ws" }},
		{"url without host", func(c *Config) { c.Rippled.URL = "http://" }},
		{"zero rippled timeout", func(c *Config) { c.Rippled.Timeout = 0 }},
		{"negative retries", func(c *Config) { c.Rippled.MaxRetries = -1 }},
		{"identity rate", func(c *Config) { c.Identity.RequestsPerSecond = 0 }},
		{"identity concurrency", func(c *Config) { c.Identity.Concurrency = 0 }},
		{"unknown backend", func(c *Config) { c.AliasCache.Backend = "redis" }},
		{"file backend without path", func(c *Config) { c.AliasCache.Backend = "bbolt" }},
		{"postgres without dsn", func(c *Config) { c.AliasCache.Backend = "postgres" }},
		{"empty command prefix", func(c *Config) { c.Bot.CommandPrefix = " " }},
		{"bad explorer url", func(c *Config) { c.Bot.ExplorerURL = "ftp://example.com/" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)
			assert.Error(t, ValidateConfig(c))
		})
	}
}

func TestDisabledIdentitySkipsValidation(t *testing.T) {
	c := validConfig()
	c.Identity = IdentityConfig{Enabled: false}
	assert.NoError(t, ValidateConfig(c))
}
