package iooptimize

import (
	"context"
	"os"
)

// vacuum compacts the database file, refreshes planner statistics and
// returns the resulting on-disk size.
func (o *optimizer) vacuum(ctx context.Context) (int64, error) {
	conn := o.operator.DB()

	for _, stmt := range []string{
		"VACUUM",
		"ANALYZE",
		// Fold the WAL back into the main file so the reported size is
		// the size the app ships with.
		"PRAGMA wal_checkpoint(TRUNCATE)",
	} {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return 0, VacuumError(err)
		}
	}

	info, err := os.Stat(o.operator.Path())
	if err != nil {
		return 0, VacuumError(err)
	}
	return info.Size(), nil
}
