// Package ioschema implements the SchemaManager interface for the
// seed database. This is an impure I/O package that executes the fixed
// DDL mirroring the app's migrations v1-v9.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/umilog/umiseed/pkg/db"
	"github.com/umilog/umiseed/pkg/lifecycle"
)

type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create executes the full DDL and records every migration identifier
// in grdb_migrations. The database must be empty; any SQL error aborts
// the build.
func (m *manager) Create(ctx context.Context) error {
	conn := m.operator.DB()
	if conn == nil {
		return NotConnectedError()
	}

	for _, stmt := range ddl {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return CreateSchemaError(stmt, err)
		}
	}

	for _, id := range migrations {
		_, err := conn.ExecContext(ctx,
			"INSERT INTO grdb_migrations (identifier) VALUES (?)", id)
		if err != nil {
			return MigrationRecordError(id, err)
		}
	}

	slog.Info("schema created",
		"statements", len(ddl),
		"migrations", len(migrations),
	)
	return nil
}
