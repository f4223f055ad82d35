package lifecycle

import (
	"context"
)

// Optimizer defines the interface for the post-load steps: full-text index
// repair and database compaction.
//
// The FTS repair is idempotent: shadow tables are rebuilt only when their
// row counts disagree with the base tables, so re-running Optimize on a
// consistent database changes nothing.
type Optimizer interface {
	// Optimize rebuilds out-of-sync FTS shadow tables, then runs VACUUM
	// and ANALYZE. Returns the final on-disk size in bytes.
	Optimize(ctx context.Context) (int64, error)
}
