package lifecycle

import (
	"context"
)

// Stats reports row counts after a successful population run.
type Stats struct {
	Sites   int
	Species int
	Links   int
}

// Populator defines the interface for seeding the database from the JSON
// documents in the seed data directory. Seeders run in dependency order:
// countries → regions → areas → families → sites → species → site-species
// links → media, followed by the rarity recalculation.
//
// A missing input file skips its seeder with a warning and leaves the table
// empty; malformed JSON or a primary-key collision aborts the run.
type Populator interface {
	// Populate runs all seeders and the rarity recalculation.
	Populate(ctx context.Context) (Stats, error)
}
