// Package iovalidate runs the input sanity checks over a seed data
// directory before a build. The checks themselves are pure and live in
// pkg/seed; this package only loads files and renders the report.
package iovalidate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/umilog/umiseed/pkg/seed"
)

// Report summarizes one validation run.
type Report struct {
	Sites    int
	Species  int
	Links    int
	Errors   []seed.Issue
	Warnings []seed.Issue
}

// Failed reports whether any fatal issue was found.
func (r Report) Failed() bool {
	return len(r.Errors) > 0
}

// Validator checks the seed JSON documents in a data directory.
type Validator interface {
	// Validate loads the site, species and link files and runs all
	// checks. Missing files are skipped; a fatal issue does not abort
	// the run, it only marks the report as failed.
	Validate(dataDir string) (Report, error)
}

type validator struct{}

// New creates a new Validator.
func New() Validator {
	return &validator{}
}

func (v *validator) Validate(dataDir string) (Report, error) {
	var report Report

	if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
		return report, DataDirError(dataDir, err)
	}

	sitesDoc, err := loadOptional[seed.SitesDoc](dataDir,
		"sites_enriched", "sites")
	if err != nil {
		return report, err
	}
	speciesDoc, err := loadOptional[seed.SpeciesDoc](dataDir,
		"species_catalog_full", "species_catalog_v2", "species_catalog")
	if err != nil {
		return report, err
	}
	linksDoc, err := loadOptional[seed.SiteSpeciesDoc](dataDir,
		"site_species")
	if err != nil {
		return report, err
	}

	siteIDs := make(map[string]bool)
	speciesIDs := make(map[string]bool)
	var issues []seed.Issue

	if sitesDoc != nil {
		report.Sites = len(sitesDoc.Sites)
		issues = append(issues, seed.ValidateSites(sitesDoc.Sites)...)
		for _, s := range sitesDoc.Sites {
			siteIDs[s.ID] = true
		}
	}
	if speciesDoc != nil {
		report.Species = len(speciesDoc.Species)
		issues = append(issues, seed.ValidateSpecies(speciesDoc.Species)...)
		for _, s := range speciesDoc.Species {
			speciesIDs[s.ID] = true
		}
	}
	if linksDoc != nil {
		report.Links = len(linksDoc.Links)
		issues = append(issues,
			seed.ValidateLinks(linksDoc.Links, siteIDs, speciesIDs)...)
	}

	for _, issue := range issues {
		if issue.Fatal {
			report.Errors = append(report.Errors, issue)
		} else {
			report.Warnings = append(report.Warnings, issue)
		}
	}

	v.print(report)
	return report, nil
}

func (v *validator) print(r Report) {
	gn.Info("Checked <em>%d</em> sites, <em>%d</em> species, <em>%d</em> links",
		r.Sites, r.Species, r.Links)

	for _, issue := range r.Errors {
		gn.Warn(fmt.Sprintf("<warn>ERROR %s</warn>", issue))
	}
	for _, issue := range r.Warnings {
		gn.Warn(fmt.Sprintf("<warn>WARN  %s</warn>", issue))
	}

	slog.Info("validation finished",
		"errors", len(r.Errors),
		"warnings", len(r.Warnings),
	)
}

// loadOptional reads the first existing file from the candidate list,
// or nil when none exists.
func loadOptional[T any](dataDir string, names ...string) (*T, error) {
	for _, name := range names {
		path := filepath.Join(dataDir, name+".json")
		bs, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, ReadFileError(path, err)
		}

		var doc T
		enc := gnfmt.GNjson{}
		if err := enc.Decode(bs, &doc); err != nil {
			return nil, ReadFileError(path, err)
		}
		return &doc, nil
	}
	return nil, nil
}
