package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/umilog/umiseed/internal/iodb"
	"github.com/umilog/umiseed/internal/iooptimize"
	"github.com/umilog/umiseed/internal/iopopulate"
	"github.com/umilog/umiseed/internal/ioschema"
)

// getBuildCmd returns the build command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getBuildCmd() *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build [output-file]",
		Short: "Build the SQLite seed database",
		Long: `Build the pre-seeded SQLite database shipped inside the app bundle.

This command:
  1. Creates a fresh SQLite file (any existing file is replaced)
  2. Creates the schema: tables, indexes, FTS5 indexes and triggers
  3. Populates it from the JSON documents in the seed data directory
  4. Recalculates species rarity from site coverage
  5. Rebuilds out-of-sync FTS indexes, runs VACUUM and ANALYZE

The output path defaults to the configured output directory and
database file name. An explicit path given as the argument wins.

Examples:
  umiseed build
  umiseed build build/umilog_seed.db`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBuild(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return buildCmd
}

func runBuild(_ *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPath := cfg.DatabasePath()
	if len(args) > 0 {
		dbPath = args[0]
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return err
	}

	op := iodb.NewSQLiteOperator()
	if err := op.Open(ctx, dbPath); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Building seed database at <em>%s</em>", dbPath)

	sm := ioschema.NewManager(op)
	gn.Info("Creating schema...")
	if err := sm.Create(ctx); err != nil {
		return err
	}

	pop := iopopulate.New(cfg, op)
	stats, err := pop.Populate(ctx)
	if err != nil {
		return err
	}

	opt := iooptimize.New(cfg, op)
	gn.Info("Optimizing database...")
	size, err := opt.Optimize(ctx)
	if err != nil {
		return err
	}

	gn.Info(`
Seed database build complete!
  Sites:   <em>%d</em>
  Species: <em>%d</em>
  Links:   <em>%d</em>
  Size:    <em>%s</em>`,
		stats.Sites, stats.Species, stats.Links,
		humanize.Bytes(uint64(size)))

	return nil
}
