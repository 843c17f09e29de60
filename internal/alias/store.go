package alias

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mDuo13/txsplain/internal/storage/database/bbolt"
	"github.com/mDuo13/txsplain/internal/storage/database/leveldb"
	"github.com/mDuo13/txsplain/internal/storage/database/pebble"
	"github.com/mDuo13/txsplain/internal/storage/relationaldb"
)

// Store persists cache snapshots between runs.
type Store interface {
	Load(ctx context.Context) (map[string]Entry, error)
	// Save upserts entries; addresses not in entries are left alone.
	Save(ctx context.Context, entries map[string]Entry) error
	Delete(ctx context.Context, address string) error
	Close() error
}

const (
	BackendBbolt    = "bbolt"
	BackendPebble   = "pebble"
	BackendLevelDB  = "leveldb"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type StoreConfig struct {
	Backend string
	// Path is the directory for file-backed stores.
	Path string
	// DSN is the postgres connection string.
	DSN string
}

// OpenStore opens the configured backend, creating its directory if needed.
func OpenStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NopStore{}, nil
	case BackendPostgres:
		return OpenSQLStore(ctx, relationaldb.PostgresConfig(cfg.DSN))
	}

	if cfg.Path == "" {
		return nil, fmt.Errorf("alias store %s needs a path", cfg.Backend)
	}
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create alias store directory: %w", err)
	}

	switch cfg.Backend {
	case BackendBbolt:
		return NewKVStore(bbolt.NewManager(cfg.Path))
	case BackendPebble:
		return NewKVStore(pebble.NewManager(cfg.Path))
	case BackendLevelDB:
		return NewKVStore(leveldb.NewManager(cfg.Path))
	case BackendSQLite:
		return OpenSQLStore(ctx, relationaldb.SQLiteConfig(filepath.Join(cfg.Path, "aliases.sqlite")))
	}
	return nil, fmt.Errorf("unknown alias store backend %q", cfg.Backend)
}

// NopStore keeps nothing.
type NopStore struct{}

func (NopStore) Load(context.Context) (map[string]Entry, error) { return map[string]Entry{}, nil }
func (NopStore) Save(context.Context, map[string]Entry) error   { return nil }
func (NopStore) Delete(context.Context, string) error           { return nil }
func (NopStore) Close() error                                   { return nil }
