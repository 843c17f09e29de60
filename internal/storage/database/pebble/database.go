package pebble

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/mDuo13/txsplain/internal/storage/database"
)

type DB struct {
	db *pebble.DB
}

func NewDB(db *pebble.DB) *DB {
	return &DB{db: db}
}

func (p *DB) ready(ctx context.Context) error {
	if p.db == nil {
		return database.ErrDBClosed
	}
	return ctx.Err()
}

func (p *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if err := p.ready(ctx); err != nil {
		return nil, err
	}

	val, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, database.ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()

	return database.CopyBytes(val), nil
}

func (p *DB) Write(ctx context.Context, key, value []byte) error {
	if err := p.ready(ctx); err != nil {
		return err
	}
	return p.db.Set(key, value, pebble.Sync)
}

func (p *DB) Delete(ctx context.Context, key []byte) error {
	if err := p.ready(ctx); err != nil {
		return err
	}
	return p.db.Delete(key, pebble.Sync)
}

func (p *DB) Batch(ctx context.Context, ops []database.BatchOperation) error {
	if err := p.ready(ctx); err != nil {
		return err
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	for _, op := range ops {
		switch op.Type {
		case database.BatchPut:
			if err := batch.Set(op.Key, op.Value, nil); err != nil {
				return err
			}
		case database.BatchDelete:
			if err := batch.Delete(op.Key, nil); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %d", database.ErrUnknownBatchOp, op.Type)
		}
	}

	return batch.Commit(pebble.Sync)
}

type Iterator struct {
	iter    *pebble.Iterator
	start   []byte
	end     []byte
	started bool
	key     []byte
	value   []byte
}

// Iterator returns entries with start <= key <= end. The end bound is checked
// by hand since pebble's UpperBound is exclusive.
func (p *DB) Iterator(ctx context.Context, start, end []byte) (database.Iterator, error) {
	if err := p.ready(ctx); err != nil {
		return nil, err
	}

	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: start})
	if err != nil {
		return nil, fmt.Errorf("open iterator: %w", err)
	}

	return &Iterator{iter: iter, start: start, end: end}, nil
}

func (it *Iterator) Next() bool {
	var ok bool
	if !it.started {
		it.started = true
		if it.start == nil {
			ok = it.iter.First()
		} else {
			ok = it.iter.SeekGE(it.start)
		}
	} else {
		ok = it.iter.Next()
	}

	if !ok {
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
	return it.iter.Close()
}
