package database

import (
	"context"
)

// DB is the key/value surface the alias cache persists through.
type DB interface {
	Read(ctx context.Context, key []byte) ([]byte, error)
	Write(ctx context.Context, key []byte, value []byte) error
	Delete(ctx context.Context, key []byte) error

	// Batch applies every operation atomically.
	Batch(ctx context.Context, ops []BatchOperation) error

	// Iterator walks keys in [start, end]. A nil bound is open.
	Iterator(ctx context.Context, start, end []byte) (Iterator, error)
}

// Manager opens named databases below one directory.
type Manager interface {
	OpenDB(name string) (DB, error)
	CloseDB(name string) error
	Close() error
}

// Iterator allows traversing over database entries
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Close() error
}

// BatchOperation represents a single operation in a batch
type BatchOperation struct {
	Type  BatchOpType
	Key   []byte
	Value []byte
}

type BatchOpType int

const (
	BatchPut BatchOpType = iota
	BatchDelete
)

// Put builds a BatchPut operation.
func Put(key, value []byte) BatchOperation {
	return BatchOperation{Type: BatchPut, Key: key, Value: value}
}

// Del builds a BatchDelete operation.
func Del(key []byte) BatchOperation {
	return BatchOperation{Type: BatchDelete, Key: key}
}

// CopyBytes detaches a slice from storage-owned memory.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
