package leveldb

import (
	"io"

	"github.com/mDuo13/txsplain/internal/storage/database"
	"github.com/syndtr/goleveldb/leveldb"
)

func NewManager(dir string) *database.Registry {
	return database.NewRegistry(dir, Open)
}

func Open(path, _ string) (database.DB, io.Closer, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, nil, err
	}
	return NewDB(db), db, nil
}
