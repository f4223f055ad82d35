package iofetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gnames/gn"
	"github.com/umilog/umiseed/pkg/config"
	"github.com/umilog/umiseed/pkg/seed"
	"golang.org/x/sync/errgroup"
)

const inatAPI = "https://api.inaturalist.org/v1"

// allowedLicenses are the Creative Commons licenses accepted for
// redistribution inside the app.
var allowedLicenses = map[string]bool{
	"cc-by":       true,
	"cc-by-nc":    true,
	"cc-by-sa":    true,
	"cc-by-nc-sa": true,
	"cc0":         true,
	"cc-by-nd":    true,
	"cc-by-nc-nd": true,
}

type inatTaxaResponse struct {
	Results []struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		MatchedTerm string `json:"matched_term"`
	} `json:"results"`
}

type inatObservationsResponse struct {
	Results []struct {
		Photos []struct {
			URL         string `json:"url"`
			LicenseCode string `json:"license_code"`
			Attribution string `json:"attribution"`
		} `json:"photos"`
	} `json:"results"`
}

// INaturalist collects licensed reference photos per species from
// research-grade iNaturalist observations and writes
// species_images_inaturalist.json.
type INaturalist struct {
	cfg    *config.Config
	client *Client

	// BaseURL is overridable for tests.
	BaseURL string
}

// NewINaturalist creates an iNaturalist fetcher.
func NewINaturalist(cfg *config.Config) *INaturalist {
	return &INaturalist{
		cfg:     cfg,
		client:  NewClient(cfg.Fetch.RequestDelayMs),
		BaseURL: inatAPI,
	}
}

// Fetch resolves every catalog species to a taxon and collects up to
// PhotosPerSpecies licensed photos. Checkpointed species are skipped on
// resume. The species catalog must already exist in the data dir.
func (f *INaturalist) Fetch(ctx context.Context) error {
	catalog, err := loadSpeciesCatalog(f.cfg.Paths.DataDir)
	if err != nil {
		return err
	}

	cpPath := filepath.Join(
		config.CacheDir(f.cfg.HomeDir), "inaturalist_photos.jsonl")
	cp, err := OpenCheckpoint(cpPath)
	if err != nil {
		return err
	}
	defer cp.Close()

	if cp.Count() > 0 {
		gn.Info("Resuming: <em>%d</em> of %d species already fetched",
			cp.Count(), len(catalog.Species))
	}

	// Producer feeds pending species; a single consumer talks to the
	// API, which keeps the rate limit trivially honored.
	chIn := make(chan seed.Species)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for _, sp := range catalog.Species {
			if cp.Done(sp.ID) {
				continue
			}
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case chIn <- sp:
			}
		}
		return nil
	})

	g.Go(func() error {
		processed := 0
		for sp := range chIn {
			entry, err := f.fetchSpecies(gCtx, sp)
			if err != nil {
				return err
			}
			if err := cp.Mark(sp.ID, entry); err != nil {
				return err
			}

			processed++
			if f.cfg.Fetch.CheckpointEvery > 0 &&
				processed%f.cfg.Fetch.CheckpointEvery == 0 {
				slog.Info("inaturalist fetch progress",
					"done", cp.Count(), "total", len(catalog.Species))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return writePhotoManifest(cp, filepath.Join(
		f.cfg.Paths.DataDir, "species_images_inaturalist.json"))
}

// fetchSpecies resolves one species and collects its photos. Species
// that cannot be resolved yield nil; they are still checkpointed so a
// resume does not retry them.
func (f *INaturalist) fetchSpecies(
	ctx context.Context,
	sp seed.Species,
) (*seed.PhotoEntry, error) {
	taxonID, err := f.searchTaxon(ctx, sp.Scientific())
	if err != nil {
		return nil, err
	}
	if taxonID == 0 {
		slog.Warn("taxon not found", "species", sp.Scientific())
		return nil, nil
	}

	photos, err := f.observationPhotos(ctx, taxonID)
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return nil, nil
	}
	return &seed.PhotoEntry{Photos: photos}, nil
}

// searchTaxon resolves a scientific name to a taxon id. Returns 0 when
// no confident match exists.
func (f *INaturalist) searchTaxon(
	ctx context.Context,
	scientific string,
) (int64, error) {
	q := url.Values{}
	q.Set("q", scientific)
	q.Set("rank", "species,subspecies")
	q.Set("is_active", "true")
	u := fmt.Sprintf("%s/taxa/autocomplete?%s", f.BaseURL, q.Encode())

	var resp inatTaxaResponse
	ok, err := f.client.GetJSON(ctx, u, &resp)
	if err != nil {
		return 0, err
	}
	if !ok || len(resp.Results) == 0 {
		return 0, nil
	}

	lower := strings.ToLower(scientific)
	for _, result := range resp.Results {
		if strings.ToLower(result.Name) == lower {
			return result.ID, nil
		}
	}

	first := resp.Results[0]
	if strings.ToLower(first.MatchedTerm) == lower {
		return first.ID, nil
	}
	if len(resp.Results) == 1 {
		return first.ID, nil
	}
	return 0, nil
}

// observationPhotos collects distinct licensed photos from the best
// research-grade observations of a taxon.
func (f *INaturalist) observationPhotos(
	ctx context.Context,
	taxonID int64,
) ([]seed.Photo, error) {
	limit := f.cfg.Fetch.PhotosPerSpecies
	if limit < 1 {
		limit = 1
	}

	licenses := make([]string, 0, len(allowedLicenses))
	for code := range allowedLicenses {
		licenses = append(licenses, code)
	}

	q := url.Values{}
	q.Set("taxon_id", fmt.Sprintf("%d", taxonID))
	q.Set("quality_grade", "research")
	q.Set("photos", "true")
	q.Set("photo_license", strings.Join(licenses, ","))
	// Over-fetch to survive license filtering.
	q.Set("per_page", fmt.Sprintf("%d", limit*3))
	q.Set("order_by", "votes")
	q.Set("order", "desc")
	q.Set("identified", "true")
	u := fmt.Sprintf("%s/observations?%s", f.BaseURL, q.Encode())

	var resp inatObservationsResponse
	ok, err := f.client.GetJSON(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}

	var photos []seed.Photo
	seen := make(map[string]bool)
	for _, obs := range resp.Results {
		for _, photo := range obs.Photos {
			if len(photos) >= limit {
				return photos, nil
			}
			code := strings.ToLower(photo.LicenseCode)
			if !allowedLicenses[code] || photo.URL == "" {
				continue
			}

			// iNaturalist returns thumbnail URLs; swap in the large
			// rendition.
			large := strings.ReplaceAll(photo.URL, "/square.", "/large.")
			large = strings.ReplaceAll(large, "square.jpg", "large.jpg")
			if seen[large] {
				continue
			}
			seen[large] = true

			license := photo.LicenseCode
			attribution := photo.Attribution
			photos = append(photos, seed.Photo{
				URL:         large,
				License:     &license,
				Attribution: &attribution,
			})
		}
	}
	return photos, nil
}

