package alias

import (
	"context"
	"fmt"
	"time"

	"github.com/mDuo13/txsplain/internal/storage/relationaldb"
)

var aliasSchema = []string{
	`CREATE TABLE IF NOT EXISTS aliases (
		address    TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		known      INTEGER NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
}

const upsertAlias = `INSERT INTO aliases (address, name, known, updated_at) VALUES (?, ?, ?, ?)
	ON CONFLICT (address) DO UPDATE SET name = excluded.name, known = excluded.known, updated_at = excluded.updated_at`

// SQLStore keeps entries in an aliases table on PostgreSQL or SQLite.
type SQLStore struct {
	db *relationaldb.Database
}

func OpenSQLStore(ctx context.Context, cfg *relationaldb.Config) (*SQLStore, error) {
	db, err := relationaldb.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Exec(ctx, aliasSchema...); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Load(ctx context.Context) (map[string]Entry, error) {
	sqlDB := s.db.DB()
	if sqlDB == nil {
		return nil, relationaldb.ErrDatabaseClosed
	}
	rows, err := sqlDB.QueryContext(ctx, "SELECT address, name, known FROM aliases")
	if err != nil {
		return nil, relationaldb.NewQueryError("load_aliases", "failed to query aliases", err)
	}
	defer rows.Close()

	out := make(map[string]Entry)
	for rows.Next() {
		var (
			addr, name string
			known      int
		)
		if err := rows.Scan(&addr, &name, &known); err != nil {
			return nil, relationaldb.NewQueryError("load_aliases", "failed to scan row", err)
		}
		out[addr] = Entry{Name: name, Known: known != 0}
	}
	if err := rows.Err(); err != nil {
		return nil, relationaldb.NewQueryError("load_aliases", "failed to read rows", err)
	}
	return out, nil
}

func (s *SQLStore) Save(ctx context.Context, entries map[string]Entry) error {
	sqlDB := s.db.DB()
	if sqlDB == nil {
		return relationaldb.ErrDatabaseClosed
	}
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return relationaldb.NewQueryError("save_aliases", "failed to begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.db.Rebind(upsertAlias))
	if err != nil {
		return relationaldb.NewQueryError("save_aliases", "failed to prepare upsert", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for addr, e := range entries {
		if e.Transient {
			continue
		}
		known := 0
		if e.Known {
			known = 1
		}
		if _, err := stmt.ExecContext(ctx, addr, e.Name, known, now); err != nil {
			return relationaldb.NewQueryError("save_aliases", fmt.Sprintf("failed to save %s", addr), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return relationaldb.NewQueryError("save_aliases", "failed to commit", err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, address string) error {
	sqlDB := s.db.DB()
	if sqlDB == nil {
		return relationaldb.ErrDatabaseClosed
	}
	if _, err := sqlDB.ExecContext(ctx, s.db.Rebind("DELETE FROM aliases WHERE address = ?"), address); err != nil {
		return relationaldb.NewQueryError("delete_alias", "failed to delete alias", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
