// Package iodb implements database operations on the generated SQLite
// file. This is an impure I/O package that implements contracts defined
// in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"os"

	"github.com/umilog/umiseed/pkg/db"
	_ "modernc.org/sqlite"
)

// sqliteOperator implements db.Operator over a single SQLite file.
type sqliteOperator struct {
	db   *sql.DB
	path string
}

// NewSQLiteOperator creates a new database operator
// (without opening a file).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Open removes any previous database file at path and opens a fresh
// connection. The seed database is always rebuilt from scratch, so a
// stale file is never reused.
func (s *sqliteOperator) Open(
	ctx context.Context,
	path string,
) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return RemoveFileError(p, err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return OpenError(path, err)
	}

	// The whole build runs on one connection; SQLite handles its own
	// file locking.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return OpenError(path, err)
		}
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return OpenError(path, err)
	}

	s.db = conn
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *sqliteOperator) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for lifecycle components to
// execute their specialized SQL.
func (s *sqliteOperator) DB() *sql.DB {
	return s.db
}

// Path returns the filesystem path of the open database file.
func (s *sqliteOperator) Path() string {
	return s.path
}

// TableExists checks if a table exists in the database.
func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = ?
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if the database has any tables.
func (s *sqliteOperator) HasTables(
	ctx context.Context,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table'
			AND name NOT LIKE 'sqlite_%'
		)
	`

	var hasTables bool
	err := s.db.QueryRowContext(ctx, query).Scan(&hasTables)
	if err != nil {
		return false, TableExistsCheckError("sqlite_master", err)
	}

	return hasTables, nil
}
