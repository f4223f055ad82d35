// Package iopopulate implements the Populator interface for the seed
// database. This is an impure I/O package that reads the seed JSON
// documents and performs bulk inserts in dependency order.
package iopopulate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/umilog/umiseed/pkg/config"
	"github.com/umilog/umiseed/pkg/db"
	"github.com/umilog/umiseed/pkg/lifecycle"
)

// populator implements the lifecycle.Populator interface.
type populator struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new Populator.
func New(cfg *config.Config, op db.Operator) lifecycle.Populator {
	return &populator{cfg: cfg, operator: op}
}

// Populate runs all seeders in dependency order, recalculates rarity,
// and returns the resulting row counts.
func (p *populator) Populate(
	ctx context.Context,
) (lifecycle.Stats, error) {
	var stats lifecycle.Stats
	if p.operator.DB() == nil {
		return stats, NotConnectedError()
	}

	start := time.Now()
	slog.Info("starting population", "data_dir", p.cfg.Paths.DataDir)

	gn.Info("Seeding geographic hierarchy...")
	if err := p.seedCountries(ctx); err != nil {
		return stats, err
	}
	if err := p.seedRegions(ctx); err != nil {
		return stats, err
	}
	if err := p.seedAreas(ctx); err != nil {
		return stats, err
	}

	gn.Info("Seeding species families...")
	if err := p.seedFamilies(ctx); err != nil {
		return stats, err
	}

	gn.Info("Seeding sites...")
	if err := p.seedSites(ctx); err != nil {
		return stats, err
	}

	gn.Info("Seeding species...")
	if err := p.seedSpecies(ctx); err != nil {
		return stats, err
	}

	gn.Info("Seeding site-species links...")
	counts, err := p.seedLinks(ctx)
	if err != nil {
		return stats, err
	}

	gn.Info("Recalculating species rarity...")
	if err := p.applyRarity(ctx, counts); err != nil {
		return stats, err
	}

	gn.Info("Seeding site media...")
	if err := p.seedMedia(ctx); err != nil {
		return stats, err
	}

	stats, err = p.collectStats(ctx)
	if err != nil {
		return stats, err
	}

	slog.Info("population complete",
		"sites", stats.Sites,
		"species", stats.Species,
		"links", stats.Links,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info("Seeded <em>%s</em> sites, <em>%s</em> species, <em>%s</em> links in %s",
		humanize.Comma(int64(stats.Sites)),
		humanize.Comma(int64(stats.Species)),
		humanize.Comma(int64(stats.Links)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return stats, nil
}

func (p *populator) collectStats(
	ctx context.Context,
) (lifecycle.Stats, error) {
	var stats lifecycle.Stats
	conn := p.operator.DB()

	queries := []struct {
		table string
		dest  *int
	}{
		{"sites", &stats.Sites},
		{"wildlife_species", &stats.Species},
		{"site_species", &stats.Links},
	}
	for _, q := range queries {
		err := conn.QueryRowContext(ctx,
			"SELECT count(*) FROM "+q.table).Scan(q.dest)
		if err != nil {
			return stats, QueryError(q.table, err)
		}
	}
	return stats, nil
}

// insertBatch performs batched multi-row INSERTs. Rows are split into
// chunks of cfg.Build.BatchSize to keep statements reasonably sized.
func (p *populator) insertBatch(
	ctx context.Context,
	table string,
	columns []string,
	rows [][]any,
) error {
	if len(rows) == 0 {
		return nil
	}

	conn := p.operator.DB()
	batchSize := p.cfg.Build.BatchSize
	if batchSize < 1 {
		batchSize = 500
	}

	placeholder := "(" +
		strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ",
		table, strings.Join(columns, ", "))

	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))
		batch := rows[i:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*len(columns))
		for j, row := range batch {
			placeholders[j] = placeholder
			args = append(args, row...)
		}

		query := prefix + strings.Join(placeholders, ", ")
		if _, err := conn.ExecContext(ctx, query, args...); err != nil {
			return InsertError(table, err)
		}
	}

	return nil
}

// tableIDs collects the primary keys of a seeded table. Used to filter
// links and media that reference unknown records.
func (p *populator) tableIDs(
	ctx context.Context,
	table string,
) (map[string]bool, error) {
	rows, err := p.operator.DB().QueryContext(ctx,
		"SELECT id FROM "+table)
	if err != nil {
		return nil, QueryError(table, err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, QueryError(table, err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError(table, err)
	}
	return ids, nil
}
