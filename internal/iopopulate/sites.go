package iopopulate

import (
	"context"
	"log/slog"
	"time"

	"github.com/umilog/umiseed/pkg/seed"
)

var siteColumns = []string{
	"id", "name", "location", "latitude", "longitude", "region",
	"averageDepth", "maxDepth", "averageTemp", "averageVisibility",
	"difficulty", "type", "description", "wishlist", "visitedCount",
	"createdAt", "tags", "country_id", "region_id", "area_id",
	"wikidata_id", "osm_id", "isPlanned",
}

func (p *populator) seedSites(ctx context.Context) error {
	doc, err := loadDoc[seed.SitesDoc](
		p.cfg.Paths.DataDir, "sites_enriched")
	if err != nil || doc == nil {
		return err
	}

	now := time.Now().Format(time.RFC3339)
	bar := newBar(len(doc.Sites), "Inserting sites: ")
	defer bar.Finish()

	rows := make([][]any, len(doc.Sites))
	for i, s := range doc.Sites {
		rows[i] = []any{
			s.ID,
			s.Name,
			s.Location(),
			s.Latitude,
			s.Longitude,
			s.Region,
			orDefault(s.AverageDepth, 0),
			orDefault(s.MaxDepth, 0),
			orDefault(s.AverageTemp, 0),
			orDefault(s.AverageVisibility, 0),
			orDefault(s.Difficulty, "Intermediate"),
			orDefault(s.Type, "Reef"),
			s.Description,
			s.Wishlist,
			s.VisitedCount,
			now,
			"[]", // tags
			nil,  // country_id
			nil,  // region_id
			nil,  // area_id
			nil,  // wikidata_id
			nil,  // osm_id
			s.IsPlanned,
		}
		bar.Increment()
	}

	if err := p.insertBatch(ctx, "sites", siteColumns, rows); err != nil {
		return err
	}
	slog.Info("seeded sites", "count", len(rows))
	return nil
}

func orDefault[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
