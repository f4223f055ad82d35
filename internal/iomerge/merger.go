// Package iomerge combines several site JSON files into one,
// deduplicating across sources. This is an impure I/O package used by
// the merge command before a database build.
package iomerge

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/umilog/umiseed/pkg/seed"
)

// Merger merges site documents from multiple scraped sources.
type Merger interface {
	// Merge reads the input files, deduplicates the sites and writes the
	// combined document to outPath. Missing inputs are skipped with a
	// warning; at least one must exist.
	Merge(outPath string, inPaths []string) (int, error)
}

type merger struct{}

// New creates a new Merger.
func New() Merger {
	return &merger{}
}

func (m *merger) Merge(outPath string, inPaths []string) (int, error) {
	var all []seed.Site
	loaded := 0

	for _, path := range inPaths {
		bs, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				gn.Warn(fmt.Sprintf("<warn>%s not found, skipping</warn>", path))
				slog.Warn("merge input not found", "file", path)
				continue
			}
			return 0, ReadInputError(path, err)
		}

		var doc seed.SitesDoc
		enc := gnfmt.GNjson{}
		if err := enc.Decode(bs, &doc); err != nil {
			return 0, ReadInputError(path, err)
		}

		slog.Info("merge input loaded", "file", path, "sites", len(doc.Sites))
		all = append(all, doc.Sites...)
		loaded++
	}

	if loaded == 0 {
		return 0, NoInputError(inPaths)
	}

	unique := Dedupe(all)

	out := seed.SitesDoc{Sites: unique}
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(out)
	if err != nil {
		return 0, WriteOutputError(outPath, err)
	}
	if err := os.WriteFile(outPath, bs, 0644); err != nil {
		return 0, WriteOutputError(outPath, err)
	}

	slog.Info("merge complete",
		"inputs", loaded,
		"total", len(all),
		"unique", len(unique),
	)
	gn.Info("Merged <em>%d</em> sites into <em>%d</em> unique records",
		len(all), len(unique))
	return len(unique), nil
}

// Dedupe removes duplicate sites across sources. The key is the
// lowercased name plus coordinates rounded to 4 decimals (about 11 m);
// the first occurrence wins. Sites without an id get a deterministic
// UUID v5 of their dedupe key.
func Dedupe(sites []seed.Site) []seed.Site {
	seen := make(map[string]bool, len(sites))
	unique := make([]seed.Site, 0, len(sites))

	for _, s := range sites {
		key := dedupeKey(s)
		if seen[key] {
			continue
		}
		seen[key] = true

		if s.ID == "" {
			s.ID = gnuuid.New(key).String()
		}
		unique = append(unique, s)
	}

	return unique
}

func dedupeKey(s seed.Site) string {
	return fmt.Sprintf("%s|%.4f|%.4f",
		strings.ToLower(s.Name), s.Latitude, s.Longitude)
}
