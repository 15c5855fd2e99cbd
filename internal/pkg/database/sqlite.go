package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDB is the embedded store used for local development and tests.
type SQLiteDB struct {
	*sql.DB
}

// NewSQLiteDB opens the database file at path, ":memory:" for a private
// in-memory database. Writers are serialized on a single connection and
// every transaction takes the write lock on BEGIN.
func NewSQLiteDB(ctx context.Context, path string) (*SQLiteDB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	dsn := path + "?_foreign_keys=on&_journal_mode=WAL&_txlock=immediate&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteDB{DB: db}, nil
}

// SQLQuerier is satisfied by *sql.DB and *sql.Tx.
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
