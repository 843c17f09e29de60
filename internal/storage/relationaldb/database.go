package relationaldb

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver
)

// Database is an open SQL handle plus the dialect details callers need.
type Database struct {
	db     *sql.DB
	config *Config
}

// Open validates config, connects and pings.
func Open(ctx context.Context, config *Config) (*Database, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigurationError("open", "invalid configuration", err)
	}

	sqlDB, err := sql.Open(config.Driver, config.DSN)
	if err != nil {
		return nil, NewConnectionError("open", "failed to open database connection", err)
	}
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, config.DefaultTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, NewConnectionError("open", "failed to ping database", err)
	}

	return &Database{db: sqlDB, config: config}, nil
}

// DB returns the underlying handle, or nil once closed.
func (d *Database) DB() *sql.DB {
	return d.db
}

func (d *Database) Driver() string {
	return d.config.Driver
}

// Rebind rewrites ? placeholders into the driver's style.
func (d *Database) Rebind(query string) string {
	return Rebind(d.config.Driver, query)
}

// Exec runs statements in order, for schema setup.
func (d *Database) Exec(ctx context.Context, statements ...string) error {
	if d.db == nil {
		return ErrDatabaseClosed
	}
	for _, stmt := range statements {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return NewSchemaError("exec", "failed to execute statement", err)
		}
	}
	return nil
}

func (d *Database) Close() error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	if err != nil {
		return NewConnectionError("close", "failed to close database connection", err)
	}
	return nil
}

// Rebind rewrites ? placeholders as $1, $2, ... for PostgreSQL and leaves
// other dialects untouched. Question marks inside quoted strings are kept.
func Rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var (
		b       strings.Builder
		n       int
		inQuote bool
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
