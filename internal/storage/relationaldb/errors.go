package relationaldb

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrInvalidDriver         = errors.New("invalid database driver")
	ErrMissingDSN            = errors.New("database dsn is required")
	ErrInvalidMaxOpenConns   = errors.New("max open connections must be >= 0")
	ErrMaxIdleExceedsMaxOpen = errors.New("max idle connections cannot exceed max open connections")
	ErrInvalidTimeout        = errors.New("timeout must be positive")

	// Connection errors
	ErrDatabaseClosed = errors.New("database connection is closed")
)

// ErrorType represents different categories of database errors
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeConfiguration
	ErrorTypeConnection
	ErrorTypeQuery
	ErrorTypeSchema
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeConfiguration:
		return "configuration"
	case ErrorTypeConnection:
		return "connection"
	case ErrorTypeQuery:
		return "query"
	case ErrorTypeSchema:
		return "schema"
	}
	return "unknown"
}

// DatabaseError provides detailed information about database errors
type DatabaseError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *DatabaseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

func NewConfigurationError(operation, message string, cause error) *DatabaseError {
	return &DatabaseError{Type: ErrorTypeConfiguration, Operation: operation, Message: message, Cause: cause}
}

func NewConnectionError(operation, message string, cause error) *DatabaseError {
	return &DatabaseError{Type: ErrorTypeConnection, Operation: operation, Message: message, Cause: cause}
}

func NewQueryError(operation, message string, cause error) *DatabaseError {
	return &DatabaseError{Type: ErrorTypeQuery, Operation: operation, Message: message, Cause: cause}
}

func NewSchemaError(operation, message string, cause error) *DatabaseError {
	return &DatabaseError{Type: ErrorTypeSchema, Operation: operation, Message: message, Cause: cause}
}
