package iodb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOpen_CreatesFile verifies a database file appears at
// the requested path.
func TestOpen_CreatesFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.db")

	op := NewSQLiteOperator()
	err := op.Open(ctx, path)
	require.NoError(t, err)
	defer op.Close()

	_, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, path, op.Path())
}

// TestOpen_ReplacesExistingFile verifies a stale database is
// discarded rather than reused.
func TestOpen_ReplacesExistingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.db")

	op := NewSQLiteOperator()
	require.NoError(t, op.Open(ctx, path))

	_, err := op.DB().ExecContext(ctx,
		"CREATE TABLE leftovers (id TEXT PRIMARY KEY)")
	require.NoError(t, err)
	require.NoError(t, op.Close())

	// Reopen the same path: the old table must be gone.
	op = NewSQLiteOperator()
	require.NoError(t, op.Open(ctx, path))
	defer op.Close()

	exists, err := op.TableExists(ctx, "leftovers")
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestOpen_ForeignKeysEnabled verifies the foreign_keys pragma
// is active on the connection.
func TestOpen_ForeignKeysEnabled(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.db")

	op := NewSQLiteOperator()
	require.NoError(t, op.Open(ctx, path))
	defer op.Close()

	var fk int
	err := op.DB().QueryRowContext(ctx,
		"PRAGMA foreign_keys").Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk)
}

// TestTableExists verifies table lookup against sqlite_master.
func TestTableExists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.db")

	op := NewSQLiteOperator()
	require.NoError(t, op.Open(ctx, path))
	defer op.Close()

	exists, err := op.TableExists(ctx, "sites")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = op.DB().ExecContext(ctx,
		"CREATE TABLE sites (id TEXT PRIMARY KEY)")
	require.NoError(t, err)

	exists, err = op.TableExists(ctx, "sites")
	require.NoError(t, err)
	assert.True(t, exists)
}

// TestHasTables verifies empty-database detection.
func TestHasTables(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.db")

	op := NewSQLiteOperator()
	require.NoError(t, op.Open(ctx, path))
	defer op.Close()

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = op.DB().ExecContext(ctx,
		"CREATE TABLE countries (id TEXT PRIMARY KEY)")
	require.NoError(t, err)

	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

// TestNotConnected verifies operations fail cleanly before Open.
func TestNotConnected(t *testing.T) {
	ctx := context.Background()
	op := NewSQLiteOperator()

	_, err := op.TableExists(ctx, "sites")
	assert.Error(t, err)

	_, err = op.HasTables(ctx)
	assert.Error(t, err)

	// Close without Open is a no-op.
	assert.NoError(t, op.Close())
}
