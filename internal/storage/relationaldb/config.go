// Package relationaldb opens the SQL databases the alias cache can persist
// to: PostgreSQL through lib/pq and SQLite through modernc.org/sqlite.
package relationaldb

import (
	"fmt"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config contains database configuration settings
type Config struct {
	Driver string
	// DSN is a postgres connection string, or a file path for SQLite.
	DSN string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	DefaultTimeout time.Duration
}

// PostgresConfig creates a PostgreSQL-specific configuration
func PostgresConfig(dsn string) *Config {
	return &Config{
		Driver:          DriverPostgres,
		DSN:             dsn,
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		DefaultTimeout:  10 * time.Second,
	}
}

// SQLiteConfig creates a SQLite-specific configuration
func SQLiteConfig(path string) *Config {
	return &Config{
		Driver:         DriverSQLite,
		DSN:            path,
		MaxOpenConns:   1, // SQLite allows one writer
		MaxIdleConns:   1,
		DefaultTimeout: 10 * time.Second,
	}
}

// Validate checks the configuration for common errors
func (c *Config) Validate() error {
	switch strings.ToLower(c.Driver) {
	case "postgres", "postgresql":
		c.Driver = DriverPostgres
	case "sqlite", "sqlite3":
		c.Driver = DriverSQLite
	default:
		return fmt.Errorf("%w: %s", ErrInvalidDriver, c.Driver)
	}

	if c.DSN == "" {
		return ErrMissingDSN
	}
	if c.MaxOpenConns < 0 {
		return ErrInvalidMaxOpenConns
	}
	if c.MaxIdleConns > c.MaxOpenConns && c.MaxOpenConns > 0 {
		return ErrMaxIdleExceedsMaxOpen
	}
	if c.DefaultTimeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
