package db

import (
	"context"
	"database/sql"
)

// Operator defines the interface for basic database management operations.
// It owns the connection to the output SQLite file and exposes the
// underlying *sql.DB for high-level lifecycle components (SchemaManager,
// Populator, Optimizer) to execute their specialized SQL internally.
//
// Design rationale:
// - Keeps interface minimal to avoid bloat with mixed semantics
// - DB() enables components to run transactions and bulk inserts directly
// - Schema creation is handled by SchemaManager, not here
type Operator interface {
	// Open creates (or replaces) the SQLite database file and applies the
	// connection pragmas (foreign_keys=ON, journal_mode=WAL).
	Open(ctx context.Context, path string) error

	// Close closes the database connection.
	Close() error

	// DB returns the underlying *sql.DB for high-level components to
	// execute specialized SQL operations.
	DB() *sql.DB

	// Path returns the filesystem path of the open database file.
	Path() string

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables. Used to decide
	// whether schema creation would clobber existing data.
	HasTables(ctx context.Context) (bool, error)
}
