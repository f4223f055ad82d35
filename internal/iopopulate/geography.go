package iopopulate

import (
	"context"
	"log/slog"

	"github.com/umilog/umiseed/pkg/seed"
)

func (p *populator) seedCountries(ctx context.Context) error {
	doc, err := loadDoc[seed.CountriesDoc](p.cfg.Paths.DataDir, "countries")
	if err != nil || doc == nil {
		return err
	}

	rows := make([][]any, len(doc.Countries))
	for i, c := range doc.Countries {
		rows[i] = []any{c.ID, c.Name, c.NameLocal, c.Continent, c.WikidataID}
	}

	err = p.insertBatch(ctx, "countries",
		[]string{"id", "name", "name_local", "continent", "wikidata_id"},
		rows)
	if err != nil {
		return err
	}
	slog.Info("seeded countries", "count", len(rows))
	return nil
}

// seedRegions merges the base regions file with the optional editorial
// enrichment file. Enrichment contributes tagline and description only.
func (p *populator) seedRegions(ctx context.Context) error {
	doc, err := loadDoc[seed.RegionsDoc](p.cfg.Paths.DataDir, "regions")
	if err != nil || doc == nil {
		return err
	}

	enrichedDoc, err := loadDoc[seed.RegionsDoc](
		p.cfg.Paths.DataDir, "regions_enriched")
	if err != nil {
		return err
	}
	enrichments := make(map[string]seed.Region)
	if enrichedDoc != nil {
		for _, r := range enrichedDoc.Regions {
			enrichments[r.ID] = r
		}
	}

	rows := make([][]any, len(doc.Regions))
	for i, r := range doc.Regions {
		enrich := enrichments[r.ID]
		rows[i] = []any{
			r.ID, r.Name, r.CountryID, r.Latitude, r.Longitude,
			r.WikidataID, enrich.Tagline, enrich.Description,
		}
	}

	err = p.insertBatch(ctx, "regions",
		[]string{
			"id", "name", "country_id", "latitude", "longitude",
			"wikidata_id", "tagline", "description",
		},
		rows)
	if err != nil {
		return err
	}
	slog.Info("seeded regions",
		"count", len(rows), "enriched", len(enrichments))
	return nil
}

func (p *populator) seedAreas(ctx context.Context) error {
	doc, err := loadDoc[seed.AreasDoc](p.cfg.Paths.DataDir, "areas")
	if err != nil || doc == nil {
		return err
	}

	rows := make([][]any, len(doc.Areas))
	for i, a := range doc.Areas {
		rows[i] = []any{
			a.ID, a.Name, a.RegionID, a.CountryID,
			a.Latitude, a.Longitude, a.WikidataID,
		}
	}

	err = p.insertBatch(ctx, "areas",
		[]string{
			"id", "name", "region_id", "country_id",
			"latitude", "longitude", "wikidata_id",
		},
		rows)
	if err != nil {
		return err
	}
	slog.Info("seeded areas", "count", len(rows))
	return nil
}
