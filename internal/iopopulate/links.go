package iopopulate

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/umilog/umiseed/pkg/seed"
)

var linkColumns = []string{
	"site_id", "species_id", "likelihood", "season_months",
	"depth_min_m", "depth_max_m", "source", "source_record_count",
	"last_updated",
}

// seedLinks inserts site-species links and returns the number of linked
// sites per species for the rarity recalculation. Links embedded in the
// species catalog win; the standalone site_species.json file is only
// consulted when the catalog carries none.
func (p *populator) seedLinks(
	ctx context.Context,
) (map[string]int, error) {
	validSpecies, err := p.tableIDs(ctx, "wildlife_species")
	if err != nil {
		return nil, err
	}
	validSites, err := p.tableIDs(ctx, "sites")
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	seen := make(map[string]bool)
	now := time.Now().Format(time.RFC3339)

	rows, err := p.embeddedLinks(validSites, validSpecies, seen, counts, now)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		rows, err = p.standaloneLinks(
			validSites, validSpecies, seen, counts, now)
		if err != nil {
			return nil, err
		}
	}

	if err := p.insertBatch(ctx, "site_species", linkColumns, rows); err != nil {
		return nil, err
	}
	slog.Info("seeded site-species links",
		"count", len(rows), "species_linked", len(counts))
	return counts, nil
}

func (p *populator) embeddedLinks(
	validSites, validSpecies map[string]bool,
	seen map[string]bool,
	counts map[string]int,
	now string,
) ([][]any, error) {
	catalog, _, err := firstDoc[seed.SpeciesDoc](
		p.cfg.Paths.DataDir, "species_catalog_full", "species_catalog_v2")
	if err != nil || catalog == nil {
		return nil, err
	}

	var rows [][]any
	for _, sp := range catalog.Species {
		if !validSpecies[sp.ID] {
			continue
		}
		for _, ref := range sp.Sites {
			siteID := strings.TrimSpace(ref.ID)
			if siteID == "" || !validSites[siteID] {
				continue
			}

			key := siteID + "|" + sp.ID
			if seen[key] {
				continue
			}
			seen[key] = true

			rows = append(rows, []any{
				siteID,
				sp.ID,
				seed.NormalizeLikelihood(ref.Likelihood),
				nil, // season_months
				nil, // depth_min_m
				nil, // depth_max_m
				"catalog_full",
				nil, // source_record_count
				now,
			})
			counts[sp.ID]++
		}
	}
	return rows, nil
}

func (p *populator) standaloneLinks(
	validSites, validSpecies map[string]bool,
	seen map[string]bool,
	counts map[string]int,
	now string,
) ([][]any, error) {
	doc, err := loadDoc[seed.SiteSpeciesDoc](
		p.cfg.Paths.DataDir, "site_species")
	if err != nil || doc == nil {
		return nil, err
	}

	var rows [][]any
	for _, link := range doc.Links {
		siteID := strings.TrimSpace(link.SiteID)
		speciesID := strings.TrimSpace(link.SpeciesID)
		if siteID == "" || speciesID == "" {
			continue
		}
		if !validSites[siteID] || !validSpecies[speciesID] {
			continue
		}

		key := siteID + "|" + speciesID
		if seen[key] {
			continue
		}
		seen[key] = true

		var seasonMonths any
		if len(link.SeasonMonths) > 0 {
			bs, err := json.Marshal(link.SeasonMonths)
			if err != nil {
				return nil, DataFileError("site_species.json", err)
			}
			seasonMonths = string(bs)
		}

		lastUpdated := now
		if link.LastUpdated != nil && *link.LastUpdated != "" {
			lastUpdated = *link.LastUpdated
		}

		rows = append(rows, []any{
			siteID,
			speciesID,
			seed.NormalizeLikelihood(link.Likelihood),
			seasonMonths,
			link.DepthMinM,
			link.DepthMaxM,
			link.Source,
			link.SourceRecordCount,
			lastUpdated,
		})
		counts[speciesID]++
	}
	return rows, nil
}
