package pebble

import (
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/mDuo13/txsplain/internal/storage/database"
)

// NewManager keeps one pebble directory per database name under dir.
func NewManager(dir string) *database.Registry {
	return database.NewRegistry(dir, Open)
}

// Open is a database.Opener for pebble.
func Open(path, _ string) (database.DB, io.Closer, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, nil, err
	}
	return NewDB(db), db, nil
}
