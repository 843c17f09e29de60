package database

import "errors"

var (
	ErrDBClosed    = errors.New("database is closed")
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnknownBatchOp rejects a BatchOperation whose Type is neither
	// BatchPut nor BatchDelete.
	ErrUnknownBatchOp = errors.New("unknown batch operation type")

	// ErrUnknownDB is returned by CloseDB for a name that is not open.
	ErrUnknownDB = errors.New("database not open")
)
