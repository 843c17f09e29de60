package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TXSPLAIN_BOT_TOKEN.
const EnvPrefix = "TXSPLAIN"

// LoadConfig loads configuration from, in increasing priority:
// 1. Default values
// 2. The configuration file at path, or txsplain.toml in the working
//    directory or the user config directory when path is empty
// 3. Environment variables (TXSPLAIN_ prefix)
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	used, err := readConfigFile(v, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.configPath = used

	if config.AliasCache.Path == "" {
		config.AliasCache.Path = defaultCachePath()
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// readConfigFile returns the file it read. A missing explicit path is an
// error; a missing default file is not.
func readConfigFile(v *viper.Viper, path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return "", fmt.Errorf("config file does not exist: %s", path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return path, nil
	}

	v.SetConfigName("txsplain")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(DefaultConfigDir(home))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

func defaultCachePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "txsplain", "aliases")
	}
	return filepath.Join(".", "txsplain-aliases")
}
