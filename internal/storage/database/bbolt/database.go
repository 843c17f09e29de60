package bbolt

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mDuo13/txsplain/internal/storage/database"
	"go.etcd.io/bbolt"
)

// DB stores every key in a single bucket of a bbolt file.
type DB struct {
	db     *bbolt.DB
	bucket []byte
}

func NewDB(db *bbolt.DB, bucket []byte) *DB {
	return &DB{
		db:     db,
		bucket: bucket,
	}
}

func (b *DB) view(ctx context.Context, fn func(*bbolt.Bucket) error) error {
	if b.db == nil {
		return database.ErrDBClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", string(b.bucket))
		}
		return fn(bucket)
	})
}

func (b *DB) update(ctx context.Context, fn func(*bbolt.Bucket) error) error {
	if b.db == nil {
		return database.ErrDBClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return fmt.Errorf("bucket %s not found", string(b.bucket))
		}
		return fn(bucket)
	})
}

func (b *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := b.view(ctx, func(bucket *bbolt.Bucket) error {
		v := bucket.Get(key)
		if v == nil {
			return database.ErrKeyNotFound
		}
		// bbolt values are only valid for the life of the transaction
		value = database.CopyBytes(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (b *DB) Write(ctx context.Context, key []byte, value []byte) error {
	return b.update(ctx, func(bucket *bbolt.Bucket) error {
		return bucket.Put(key, value)
	})
}

func (b *DB) Delete(ctx context.Context, key []byte) error {
	return b.update(ctx, func(bucket *bbolt.Bucket) error {
		return bucket.Delete(key)
	})
}

func (b *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	return b.update(ctx, func(bucket *bbolt.Bucket) error {
		for _, op := range ops {
			var err error
			switch op.Type {
			case database.BatchPut:
				err = bucket.Put(op.Key, op.Value)
			case database.BatchDelete:
				err = bucket.Delete(op.Key)
			default:
				return fmt.Errorf("%w: %d", database.ErrUnknownBatchOp, op.Type)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Iterator holds a read-only transaction open until Close.
type Iterator struct {
	tx      *bbolt.Tx
	cursor  *bbolt.Cursor
	start   []byte
	end     []byte
	started bool
	key     []byte
	value   []byte
}

func (b *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if b.db == nil {
		return nil, database.ErrDBClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx, err := b.db.Begin(false)
	if err != nil {
		return nil, err
	}

	bucket := tx.Bucket(b.bucket)
	if bucket == nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("bucket %s not found", string(b.bucket))
	}

	return &Iterator{
		tx:     tx,
		cursor: bucket.Cursor(),
		start:  start,
		end:    end,
	}, nil
}

func (it *Iterator) Next() bool {
	var k, v []byte
	if !it.started {
		it.started = true
		if it.start == nil {
			k, v = it.cursor.First()
		} else {
			k, v = it.cursor.Seek(it.start)
		}
	} else {
		k, v = it.cursor.Next()
	}

	if k == nil || (it.end != nil && bytes.Compare(k, it.end) > 0) {
		it.key, it.value = nil, nil
		return false
	}

	it.key = database.CopyBytes(k)
	it.value = database.CopyBytes(v)
	return true
}

func (it *Iterator) Key() []byte {
	return it.key
}

func (it *Iterator) Value() []byte {
	return it.value
}

func (it *Iterator) Error() error {
	return nil
}

func (it *Iterator) Close() error {
	return it.tx.Rollback()
}
