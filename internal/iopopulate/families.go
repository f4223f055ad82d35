package iopopulate

import (
	"context"
	"log/slog"

	"github.com/umilog/umiseed/pkg/seed"
)

func (p *populator) seedFamilies(ctx context.Context) error {
	doc, err := loadDoc[seed.FamiliesDoc](
		p.cfg.Paths.DataDir, "families_catalog")
	if err != nil || doc == nil {
		return err
	}

	rows := make([][]any, len(doc.Families))
	for i, f := range doc.Families {
		rows[i] = []any{
			f.ID, f.Name, f.Scientific(), f.Category,
			f.WormsAphiaID, f.GBIFKey,
		}
	}

	err = p.insertBatch(ctx, "species_families",
		[]string{
			"id", "name", "scientific_name", "category",
			"worms_aphia_id", "gbif_key",
		},
		rows)
	if err != nil {
		return err
	}
	slog.Info("seeded species families", "count", len(rows))
	return nil
}
