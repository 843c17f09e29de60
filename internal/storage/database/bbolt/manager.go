package bbolt

import (
	"fmt"
	"io"
	"time"

	"github.com/mDuo13/txsplain/internal/storage/database"
	"go.etcd.io/bbolt"
)

// NewManager opens one bbolt file per database name, each holding a bucket
// of the same name.
func NewManager(dir string) *database.Registry {
	return database.NewRegistry(dir, Open)
}

func Open(path, name string) (database.DB, io.Closer, error) {
	// A second process holding the file lock fails fast instead of hanging.
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, nil, err
	}
	bucket := []byte(name)
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create bucket: %w", err)
	}
	return NewDB(db, bucket), db, nil
}
