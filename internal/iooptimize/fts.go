package iooptimize

import (
	"context"
	"log/slog"
)

// ftsSpec pairs an FTS shadow table with the SQL that rebuilds it from
// its base table.
type ftsSpec struct {
	fts     string
	base    string
	rebuild string
}

var ftsSpecs = []ftsSpec{
	{
		fts:  "sites_fts",
		base: "sites",
		rebuild: `INSERT INTO sites_fts(rowid, name, region, location, tags, description)
			SELECT rowid, name, region, location, tags, description FROM sites`,
	},
	{
		fts:  "species_fts",
		base: "wildlife_species",
		rebuild: `INSERT INTO species_fts(rowid, name, scientific_name)
			SELECT rowid, name, scientificName FROM wildlife_species`,
	},
}

// repairFTS rebuilds any FTS table whose row count disagrees with its
// base table. The triggers keep them in sync during normal inserts, so
// a rebuild only happens after bulk surgery on the base tables.
func (o *optimizer) repairFTS(ctx context.Context) error {
	conn := o.operator.DB()

	for _, spec := range ftsSpecs {
		var ftsCount, baseCount int
		err := conn.QueryRowContext(ctx,
			"SELECT count(*) FROM "+spec.fts).Scan(&ftsCount)
		if err != nil {
			return FTSCountError(spec.fts, err)
		}
		err = conn.QueryRowContext(ctx,
			"SELECT count(*) FROM "+spec.base).Scan(&baseCount)
		if err != nil {
			return FTSCountError(spec.base, err)
		}

		if ftsCount == baseCount {
			slog.Debug("fts index consistent",
				"table", spec.fts, "rows", ftsCount)
			continue
		}

		slog.Info("rebuilding fts index",
			"table", spec.fts, "fts_rows", ftsCount, "base_rows", baseCount)

		if _, err := conn.ExecContext(ctx,
			"DELETE FROM "+spec.fts); err != nil {
			return FTSRebuildError(spec.fts, err)
		}
		if _, err := conn.ExecContext(ctx, spec.rebuild); err != nil {
			return FTSRebuildError(spec.fts, err)
		}
	}

	return nil
}
