// Package lifecycle defines the contracts of the seed database build
// pipeline: schema creation, data population, and post-load optimization.
// Implementations live in internal/io* packages.
package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for seed database schema management.
// The schema is fixed DDL mirroring the app's migrations v1-v9, including
// FTS5 shadow tables, their maintenance triggers, and the grdb_migrations
// bookkeeping table that marks every migration as already applied.
type SchemaManager interface {
	// Create creates the complete schema on an empty database and records
	// the migration identifiers. Any SQL error aborts the build; there is
	// no partial-schema recovery.
	Create(ctx context.Context) error
}
