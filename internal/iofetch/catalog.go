package iofetch

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/umilog/umiseed/pkg/seed"
)

// loadSpeciesCatalog reads the species catalog using the same fallback
// chain as the database builder.
func loadSpeciesCatalog(dataDir string) (*seed.SpeciesDoc, error) {
	for _, name := range []string{
		"species_catalog_full", "species_catalog_v2", "species_catalog",
	} {
		path := filepath.Join(dataDir, name+".json")
		bs, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, OutputError(path, err)
		}
		var doc seed.SpeciesDoc
		enc := gnfmt.GNjson{}
		if err := enc.Decode(bs, &doc); err != nil {
			return nil, OutputError(path, err)
		}
		return &doc, nil
	}
	return nil, NoCatalogError(dataDir)
}

// writePhotoManifest assembles a species photo manifest from the
// checkpoint log. Species checkpointed without a payload (no photos
// found) are left out.
func writePhotoManifest(cp *Checkpoint, outPath string) error {
	doc := seed.PhotosDoc{Species: make(map[string]seed.PhotoEntry)}
	cp.Each(func(id string, data json.RawMessage) {
		if len(data) == 0 {
			return
		}
		var entry seed.PhotoEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			slog.Warn("skipping corrupt checkpoint entry", "id", id)
			return
		}
		doc.Species[id] = entry
	})

	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(doc)
	if err != nil {
		return OutputError(outPath, err)
	}
	if err := os.WriteFile(outPath, bs, 0644); err != nil {
		return OutputError(outPath, err)
	}

	slog.Info("photo manifest written",
		"file", outPath, "species", len(doc.Species))
	gn.Info("Wrote photos for <em>%d</em> species to <em>%s</em>",
		len(doc.Species), outPath)
	return nil
}
