package relationaldb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := "INSERT INTO t (a, b) VALUES (?, ?) ON CONFLICT (a) DO UPDATE SET b = '?'"
	assert.Equal(t, "INSERT INTO t (a, b) VALUES ($1, $2) ON CONFLICT (a) DO UPDATE SET b = '?'", Rebind(DriverPostgres, q))
	assert.Equal(t, q, Rebind(DriverSQLite, q))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"sqlite alias", Config{Driver: "sqlite3", DSN: "x.db", DefaultTimeout: 1}, nil},
		{"postgres alias", Config{Driver: "postgresql", DSN: "postgres://x", DefaultTimeout: 1}, nil},
		{"bad driver", Config{Driver: "oracle", DSN: "x", DefaultTimeout: 1}, ErrInvalidDriver},
		{"missing dsn", Config{Driver: "sqlite", DefaultTimeout: 1}, ErrMissingDSN},
		{"idle over open", Config{Driver: "sqlite", DSN: "x", MaxOpenConns: 1, MaxIdleConns: 2, DefaultTimeout: 1}, ErrMaxIdleExceedsMaxOpen},
		{"no timeout", Config{Driver: "sqlite", DSN: "x"}, ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, SQLiteConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)

	require.NoError(t, db.Exec(ctx, "CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT)"))
	_, err = db.DB().ExecContext(ctx, db.Rebind("INSERT INTO kv (k, v) VALUES (?, ?)"), "a", "b")
	require.NoError(t, err)

	var v string
	require.NoError(t, db.DB().QueryRowContext(ctx, db.Rebind("SELECT v FROM kv WHERE k = ?"), "a").Scan(&v))
	assert.Equal(t, "b", v)

	require.NoError(t, db.Close())
	assert.Nil(t, db.DB())
	assert.ErrorIs(t, db.Exec(ctx, "SELECT 1"), ErrDatabaseClosed)
	assert.NoError(t, db.Close())
}

func TestOpenInvalidConfig(t *testing.T) {
	_, err := Open(context.Background(), &Config{Driver: "oracle"})
	require.Error(t, err)

	var dbErr *DatabaseError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, ErrorTypeConfiguration, dbErr.Type)
	assert.ErrorIs(t, err, ErrInvalidDriver)
}
