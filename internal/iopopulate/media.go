package iopopulate

import (
	"context"
	"log/slog"

	"github.com/umilog/umiseed/pkg/seed"
)

var mediaColumns = []string{
	"id", "site_id", "kind", "url", "width", "height", "license",
	"attribution", "source_url", "sha256", "is_redistributable",
}

// seedMedia inserts site media records, dropping those that point at
// unknown sites.
func (p *populator) seedMedia(ctx context.Context) error {
	doc, err := loadDoc[seed.MediaDoc](p.cfg.Paths.DataDir, "site_media")
	if err != nil || doc == nil {
		return err
	}

	validSites, err := p.tableIDs(ctx, "sites")
	if err != nil {
		return err
	}

	var rows [][]any
	for _, m := range doc.Media {
		if !validSites[m.SiteID] {
			continue
		}
		rows = append(rows, []any{
			m.ID,
			m.SiteID,
			orDefault(m.Kind, "photo"),
			m.URL,
			m.Width,
			m.Height,
			m.License,
			m.Attribution,
			m.SourceURL,
			m.SHA256,
			orDefault(m.IsRedistributable, true),
		})
	}

	if err := p.insertBatch(ctx, "site_media", mediaColumns, rows); err != nil {
		return err
	}
	slog.Info("seeded site media",
		"count", len(rows), "dropped", len(doc.Media)-len(rows))
	return nil
}
