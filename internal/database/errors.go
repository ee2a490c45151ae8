package database

import (
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

var (
	// ErrTransactionOpen is returned by Begin when a transaction is
	// already in progress; nested transactions are not supported.
	ErrTransactionOpen = errors.New("transaction already in progress")

	// ErrNoTransaction is returned by Commit and Rollback when no
	// transaction is in progress.
	ErrNoTransaction = errors.New("no transaction in progress")
)

// ConnectionError means the database file could not be opened or its schema
// could not be initialized. It is fatal to Store construction; the Store
// does not recover from it.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("open database %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// OperationError is a failed statement against an open database. The engine
// diagnostic is preserved verbatim; the Store never retries or swallows it.
// A missing row is not an OperationError.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

func operationError(op string, err error) *OperationError {
	return &OperationError{Op: op, Err: err}
}

// IsConstraintViolation reports whether err was caused by a SQLite
// constraint failure, such as inserting a session for a book that does not
// exist.
func IsConstraintViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint
}
