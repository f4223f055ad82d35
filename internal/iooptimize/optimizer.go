// Package iooptimize implements the Optimizer interface: FTS shadow
// table repair followed by database compaction. This is an impure I/O
// package operating on the open seed database.
package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/umilog/umiseed/pkg/config"
	"github.com/umilog/umiseed/pkg/db"
	"github.com/umilog/umiseed/pkg/lifecycle"
)

type optimizer struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new Optimizer.
func New(cfg *config.Config, op db.Operator) lifecycle.Optimizer {
	return &optimizer{cfg: cfg, operator: op}
}

// Optimize repairs the FTS shadow tables when they disagree with their
// base tables, then compacts the file. Returns the final size in bytes.
func (o *optimizer) Optimize(ctx context.Context) (int64, error) {
	if o.operator.DB() == nil {
		return 0, NotConnectedError()
	}

	start := time.Now()

	gn.Info("Checking FTS indexes...")
	if err := o.repairFTS(ctx); err != nil {
		return 0, err
	}

	gn.Info("Compacting database...")
	size, err := o.vacuum(ctx)
	if err != nil {
		return 0, err
	}

	slog.Info("optimization complete",
		"size", humanize.Bytes(uint64(size)),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info("Database compacted: <em>%s</em>", humanize.Bytes(uint64(size)))
	return size, nil
}
