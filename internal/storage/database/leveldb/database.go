package leveldb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/mDuo13/txsplain/internal/storage/database"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var syncWrite = &opt.WriteOptions{Sync: true}

type DB struct {
	db *leveldb.DB
}

func NewDB(db *leveldb.DB) *DB {
	return &DB{db: db}
}

func (l *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	val, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, database.ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

func (l *DB) Write(ctx context.Context, key, value []byte) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.db.Put(key, value, syncWrite)
}

func (l *DB) Delete(ctx context.Context, key []byte) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.db.Delete(key, syncWrite)
}

func (l *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if l.db == nil {
		return database.ErrDBClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case database.BatchPut:
			batch.Put(op.Key, op.Value)
		case database.BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("%w: %d", database.ErrUnknownBatchOp, op.Type)
		}
	}
	return l.db.Write(batch, syncWrite)
}

type Iterator struct {
	iter  iterator.Iterator
	end   []byte
	key   []byte
	value []byte
}

func (l *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if l.db == nil {
		return nil, database.ErrDBClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// util.Range.Limit is exclusive, the end bound is checked in Next.
	return &Iterator{
		iter: l.db.NewIterator(&util.Range{Start: start}, nil),
		end:  end,
	}, nil
}

func (it *Iterator) Next() bool {
	if !it.iter.Next() {
		return false
	}
	key := it.iter.Key()
	if it.end != nil && bytes.Compare(key, it.end) > 0 {
		return false
	}
	it.key = database.CopyBytes(key)
	it.value = database.CopyBytes(it.iter.Value())
	return true
}

func (it *Iterator) Key() []byte {
	return it.key
}

func (it *Iterator) Value() []byte {
	return it.value
}

func (it *Iterator) Error() error {
	return it.iter.Error()
}

func (it *Iterator) Close() error {
	it.iter.Release()
	return nil
}
