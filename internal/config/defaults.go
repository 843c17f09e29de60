package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults registers the value of every key so environment overrides
// work without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("rippled.url", "http://s1.ripple.com:51234/")
	v.SetDefault("rippled.transport", "http")
	v.SetDefault("rippled.timeout", 20*time.Second)
	v.SetDefault("rippled.max_retries", 3)
	v.SetDefault("rippled.binary", false)
	v.SetDefault("rippled.ledger_cache_size", 256)

	v.SetDefault("identity.enabled", true)
	v.SetDefault("identity.url", "https://id.ripple.com")
	v.SetDefault("identity.timeout", 10*time.Second)
	v.SetDefault("identity.requests_per_second", 10.0)
	v.SetDefault("identity.burst", 5)
	v.SetDefault("identity.max_retries", 2)
	v.SetDefault("identity.concurrency", 8)

	v.SetDefault("alias_cache.backend", "bbolt")
	v.SetDefault("alias_cache.path", "")
	v.SetDefault("alias_cache.dsn", "")

	v.SetDefault("bot.token", "")
	v.SetDefault("bot.command_prefix", "!")
	v.SetDefault("bot.channel_id", "")
	v.SetDefault("bot.explorer_url", "https://livenet.xrpl.org/transactions/")
	v.SetDefault("bot.timeout", 30*time.Second)

	v.SetDefault("metrics.listen", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}
