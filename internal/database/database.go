// Package database implements the persistence layer: an embedded SQLite
// store for books and reading sessions with schema lifecycle, CRUD, search
// and transaction grouping.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store owns the embedded database file. Every operation is synchronous and
// runs to completion on the calling goroutine; a single Store instance must
// own the file exclusively, and callers that introduce concurrency have to
// serialize access themselves.
type Store struct {
	db     *gorm.DB
	tx     *gorm.DB
	closed bool
}

// Open connects to the SQLite database at path, creating the file when it
// does not exist, and idempotently ensures the schema (books,
// reading_sessions, api_cache). An unreadable or corrupt file yields a
// *ConnectionError.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &ConnectionError{Path: path, Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &ConnectionError{Path: path, Err: err}
	}
	// One connection keeps the file exclusively owned and the transaction
	// nesting guard meaningful.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&bookRow{}, &sessionRow{}, &cacheRow{}); err != nil {
		sqlDB.Close()
		return nil, &ConnectionError{Path: path, Err: fmt.Errorf("initialize schema: %w", err)}
	}

	log.Printf("Opened database at %s", path)
	return &Store{db: db}, nil
}

// Close releases the connection. It is safe to call multiple times; an open
// transaction is rolled back first.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	if s.tx != nil {
		s.tx.Rollback()
		s.tx = nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.closed = true
	return sqlDB.Close()
}

// Begin starts a transaction. Only one transaction may be open at a time; a
// second Begin before Commit or Rollback fails with ErrTransactionOpen.
func (s *Store) Begin() error {
	if s.tx != nil {
		return operationError("begin transaction", ErrTransactionOpen)
	}
	tx := s.db.Begin()
	if tx.Error != nil {
		return operationError("begin transaction", tx.Error)
	}
	s.tx = tx
	return nil
}

// Commit makes the open transaction's writes durable.
func (s *Store) Commit() error {
	if s.tx == nil {
		return operationError("commit transaction", ErrNoTransaction)
	}
	err := s.tx.Commit().Error
	s.tx = nil
	if err != nil {
		return operationError("commit transaction", err)
	}
	return nil
}

// Rollback discards the open transaction's writes.
func (s *Store) Rollback() error {
	if s.tx == nil {
		return operationError("rollback transaction", ErrNoTransaction)
	}
	err := s.tx.Rollback().Error
	s.tx = nil
	if err != nil {
		return operationError("rollback transaction", err)
	}
	return nil
}

// InTransaction reports whether a transaction is currently open.
func (s *Store) InTransaction() bool {
	return s.tx != nil
}

// conn returns the open transaction when one is active, so every operation
// participates in it.
func (s *Store) conn() *gorm.DB {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}
