package iopopulate

import (
	"context"
	"log/slog"
	"strings"

	"github.com/umilog/umiseed/pkg/seed"
)

// catalogChain is the species catalog fallback order, newest first.
var catalogChain = []string{
	"species_catalog_full",
	"species_catalog_v2",
	"species_catalog",
}

var speciesColumns = []string{
	"id", "name", "scientificName", "category", "rarity", "regions",
	"imageUrl", "family_id", "conservation_status", "description",
	"thumbnail_url", "worms_aphia_id", "gbif_key", "fishbase_id",
}

func (p *populator) seedSpecies(ctx context.Context) error {
	doc, name, err := firstDoc[seed.SpeciesDoc](
		p.cfg.Paths.DataDir, catalogChain...)
	if err != nil {
		return err
	}
	if doc == nil {
		slog.Warn("no species catalog found", "tried", catalogChain)
		return nil
	}
	slog.Info("using species catalog", "file", name+".json")

	descriptions, err := p.loadDescriptions()
	if err != nil {
		return err
	}
	images, err := p.loadImages()
	if err != nil {
		return err
	}

	bar := newBar(len(doc.Species), "Inserting species: ")
	defer bar.Finish()

	seen := make(map[string]bool, len(doc.Species))
	var rows [][]any
	for _, s := range doc.Species {
		bar.Increment()
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true

		desc := s.Description
		if d, ok := descriptions[s.ID]; ok {
			desc = &d
		}

		imgURL := s.ImageURL
		if u, ok := images[s.ID]; ok {
			imgURL = &u
		}
		thumbURL := s.ThumbnailURL
		if thumbURL == nil {
			thumbURL = imgURL
		}

		rarity := "Common"
		if s.Rarity != nil && strings.TrimSpace(*s.Rarity) != "" {
			rarity = *s.Rarity
		}

		rows = append(rows, []any{
			s.ID,
			s.Name,
			s.Scientific(),
			s.EffectiveCategory(),
			rarity,
			strings.Join(s.Regions, ","),
			imgURL,
			s.FamilyID,
			s.ConservationStatus,
			desc,
			thumbURL,
			s.WormsAphiaID,
			s.GBIFKey,
			s.FishbaseID,
		})
	}

	err = p.insertBatch(ctx, "wildlife_species", speciesColumns, rows)
	if err != nil {
		return err
	}
	slog.Info("seeded species",
		"count", len(rows), "duplicates", len(doc.Species)-len(rows))
	return nil
}

// loadDescriptions renders the structured visual descriptions into the
// prose stored per species. Species without a usable entry fall back to
// the catalog description.
func (p *populator) loadDescriptions() (map[string]string, error) {
	doc, err := loadDoc[seed.DescriptionsDoc](
		p.cfg.Paths.DataDir, "species_descriptions_enhanced")
	if err != nil || doc == nil {
		return nil, err
	}

	descriptions := make(map[string]string, len(doc.Species))
	for id, entry := range doc.Species {
		if entry.Visual == nil {
			continue
		}
		if text := seed.ComposeDescription(*entry.Visual); text != "" {
			descriptions[id] = text
		}
	}
	return descriptions, nil
}

// loadImages collects the best photo URL per species. iNaturalist photos
// win over Wikimedia ones.
func (p *populator) loadImages() (map[string]string, error) {
	images := make(map[string]string)

	for _, name := range []string{
		"species_images_inaturalist",
		"species_images_wikimedia",
	} {
		doc, err := loadDoc[seed.PhotosDoc](p.cfg.Paths.DataDir, name)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		for id, entry := range doc.Species {
			if _, ok := images[id]; ok {
				continue
			}
			if url := entry.FirstURL(); url != "" {
				images[id] = url
			}
		}
	}
	return images, nil
}
