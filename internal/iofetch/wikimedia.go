package iofetch

import (
	"context"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gnames/gn"
	"github.com/umilog/umiseed/pkg/config"
	"github.com/umilog/umiseed/pkg/seed"
)

const commonsAPI = "https://commons.wikimedia.org/w/api.php"

// wikiExtensions are the bitmap file types accepted from Commons.
var wikiExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikiImageInfoResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			ImageInfo []struct {
				URL         string `json:"url"`
				ThumbURL    string `json:"thumburl"`
				ExtMetadata map[string]struct {
					Value string `json:"value"`
				} `json:"extmetadata"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}

// Wikimedia collects species reference photos from Wikimedia Commons
// and writes species_images_wikimedia.json. Commons is the fallback
// image source; the builder prefers iNaturalist photos when both
// manifests exist.
type Wikimedia struct {
	cfg    *config.Config
	client *Client

	// BaseURL is overridable for tests.
	BaseURL string
}

// NewWikimedia creates a Wikimedia Commons fetcher.
func NewWikimedia(cfg *config.Config) *Wikimedia {
	return &Wikimedia{
		cfg:     cfg,
		client:  NewClient(cfg.Fetch.RequestDelayMs),
		BaseURL: commonsAPI,
	}
}

// Fetch searches Commons for every catalog species, scientific name
// first then common name, and collects up to PhotosPerSpecies photos.
// Checkpointed species are skipped on resume. The species catalog must
// already exist in the data dir.
func (f *Wikimedia) Fetch(ctx context.Context) error {
	catalog, err := loadSpeciesCatalog(f.cfg.Paths.DataDir)
	if err != nil {
		return err
	}

	cpPath := filepath.Join(
		config.CacheDir(f.cfg.HomeDir), "wikimedia_photos.jsonl")
	cp, err := OpenCheckpoint(cpPath)
	if err != nil {
		return err
	}
	defer cp.Close()

	if cp.Count() > 0 {
		gn.Info("Resuming: <em>%d</em> of %d species already fetched",
			cp.Count(), len(catalog.Species))
	}

	processed := 0
	for _, sp := range catalog.Species {
		if cp.Done(sp.ID) {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		entry, err := f.fetchSpecies(ctx, sp)
		if err != nil {
			return err
		}
		if err := cp.Mark(sp.ID, entry); err != nil {
			return err
		}

		processed++
		if f.cfg.Fetch.CheckpointEvery > 0 &&
			processed%f.cfg.Fetch.CheckpointEvery == 0 {
			slog.Info("wikimedia fetch progress",
				"done", cp.Count(), "total", len(catalog.Species))
		}
	}

	return writePhotoManifest(cp, filepath.Join(
		f.cfg.Paths.DataDir, "species_images_wikimedia.json"))
}

// fetchSpecies searches Commons for one species. Species without any
// usable image yield nil; they are still checkpointed so a resume does
// not retry them.
func (f *Wikimedia) fetchSpecies(
	ctx context.Context,
	sp seed.Species,
) (*seed.PhotoEntry, error) {
	limit := f.cfg.Fetch.PhotosPerSpecies
	if limit < 1 {
		limit = 1
	}

	terms := []string{sp.Scientific()}
	if !strings.EqualFold(sp.Name, sp.Scientific()) {
		terms = append(terms, sp.Name)
	}

	var titles []string
	seen := make(map[string]bool)
	for _, term := range terms {
		if len(titles) >= limit {
			break
		}
		found, err := f.searchFiles(ctx, term)
		if err != nil {
			return nil, err
		}
		for _, title := range found {
			if !seen[title] {
				seen[title] = true
				titles = append(titles, title)
			}
		}
	}
	if len(titles) == 0 {
		slog.Warn("no commons images", "species", sp.Scientific())
		return nil, nil
	}

	photos, err := f.imagePhotos(ctx, titles, limit)
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return nil, nil
	}
	return &seed.PhotoEntry{Photos: photos}, nil
}

// searchFiles runs a File-namespace full-text search for bitmap images
// of a term and returns the matching file titles.
func (f *Wikimedia) searchFiles(
	ctx context.Context,
	term string,
) ([]string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "search")
	q.Set("srsearch", term+" filetype:bitmap")
	q.Set("srnamespace", "6")
	q.Set("srlimit", "10")
	q.Set("format", "json")
	u := f.BaseURL + "?" + q.Encode()

	var resp wikiSearchResponse
	ok, err := f.client.GetJSON(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}

	var titles []string
	for _, result := range resp.Query.Search {
		if !strings.HasPrefix(result.Title, "File:") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(result.Title))
		if !wikiExtensions[ext] {
			continue
		}
		titles = append(titles, result.Title)
	}
	return titles, nil
}

// imagePhotos resolves file titles to photo URLs with license and
// attribution metadata. A 1024px rendition is requested; the original
// URL is the fallback. Title order is preserved.
func (f *Wikimedia) imagePhotos(
	ctx context.Context,
	titles []string,
	limit int,
) ([]seed.Photo, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("titles", strings.Join(titles, "|"))
	q.Set("prop", "imageinfo")
	q.Set("iiprop", "url|extmetadata")
	q.Set("iiurlwidth", "1024")
	q.Set("format", "json")
	u := f.BaseURL + "?" + q.Encode()

	var resp wikiImageInfoResponse
	ok, err := f.client.GetJSON(ctx, u, &resp)
	if err != nil || !ok {
		return nil, err
	}

	byTitle := make(map[string]seed.Photo, len(resp.Query.Pages))
	for id, page := range resp.Query.Pages {
		if id == "-1" || len(page.ImageInfo) == 0 {
			continue
		}
		info := page.ImageInfo[0]
		photoURL := info.ThumbURL
		if photoURL == "" {
			photoURL = info.URL
		}
		if photoURL == "" {
			continue
		}

		license := info.ExtMetadata["LicenseShortName"].Value
		attribution := info.ExtMetadata["Artist"].Value
		byTitle[page.Title] = seed.Photo{
			URL:         photoURL,
			License:     &license,
			Attribution: &attribution,
		}
	}

	var photos []seed.Photo
	for _, title := range titles {
		if len(photos) >= limit {
			break
		}
		if photo, ok := byTitle[title]; ok {
			photos = append(photos, photo)
		}
	}
	return photos, nil
}
