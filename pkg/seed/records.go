// Package seed defines the typed records of the UmiLog seed dataset and the
// pure business rules applied to them (rarity bucketing, category inference,
// description assembly). The package performs no I/O; deserialization happens
// once at the loader boundary and every optional JSON field is modeled as a
// pointer instead of being re-checked at each access site.
package seed

import (
	"encoding/json"
	"strings"
)

// CountriesDoc is the top-level shape of countries.json.
type CountriesDoc struct {
	Countries []Country `json:"countries"`
}

// Country is one row of the geographic hierarchy root.
type Country struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	NameLocal  *string `json:"name_local"`
	Continent  string  `json:"continent"`
	WikidataID *string `json:"wikidata_id"`
}

// RegionsDoc is the top-level shape of regions.json and
// regions_enriched.json.
type RegionsDoc struct {
	Regions []Region `json:"regions"`
}

// Region belongs to a country; tagline and description come from the
// enrichment file and are nil otherwise.
type Region struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	CountryID   *string  `json:"country_id"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	WikidataID  *string  `json:"wikidata_id"`
	Tagline     *string  `json:"tagline"`
	Description *string  `json:"description"`
}

// AreasDoc is the top-level shape of areas.json.
type AreasDoc struct {
	Areas []Area `json:"areas"`
}

// Area is the finest unit of the geographic hierarchy, area → region →
// country.
type Area struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	RegionID   *string  `json:"region_id"`
	CountryID  *string  `json:"country_id"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	WikidataID *string  `json:"wikidata_id"`
}

// FamiliesDoc is the top-level shape of families_catalog.json.
type FamiliesDoc struct {
	Families []Family `json:"families"`
}

// Family is a species family from the WoRMS taxonomy.
type Family struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name"`
	Category       string `json:"category"`
	WormsAphiaID   *int64 `json:"worms_aphia_id"`
	GBIFKey        *int64 `json:"gbif_key"`
}

// Scientific returns the scientific name, falling back to the common name
// when the taxonomy fetch did not provide one.
func (f Family) Scientific() string {
	if f.ScientificName != "" {
		return f.ScientificName
	}
	return f.Name
}

// SitesDoc is the top-level shape of the merged/enriched site files.
type SitesDoc struct {
	Sites []Site `json:"sites"`
}

// Site is one dive site record as produced by the scraping and merge steps.
type Site struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Region            string   `json:"region"`
	Area              *string  `json:"area"`
	Country           *string  `json:"country"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	AverageDepth      *float64 `json:"averageDepth"`
	MaxDepth          *float64 `json:"maxDepth"`
	AverageTemp       *float64 `json:"averageTemp"`
	AverageVisibility *float64 `json:"averageVisibility"`
	Difficulty        *string  `json:"difficulty"`
	Type              *string  `json:"type"`
	Description       *string  `json:"description"`
	Wishlist          bool     `json:"wishlist"`
	VisitedCount      int      `json:"visitedCount"`
	IsPlanned         bool     `json:"isPlanned"`
}

// Location builds the human-readable location string from area and country,
// falling back to the region when both are blank.
func (s Site) Location() string {
	var parts []string
	for _, p := range []*string{s.Area, s.Country} {
		if p == nil {
			continue
		}
		if v := strings.TrimSpace(*p); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return s.Region
	}
	return strings.Join(parts, ", ")
}

// SpeciesDoc is the top-level shape of the species catalog files.
type SpeciesDoc struct {
	Species []Species `json:"species"`
}

// Species is one wildlife species record. Sites carries the site links
// embedded by the full catalog; it is empty in older catalog versions.
type Species struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	ScientificName     *string          `json:"scientificName"`
	Category           *string          `json:"category"`
	Rarity             *string          `json:"rarity"`
	Regions            []string         `json:"regions"`
	ImageURL           *string          `json:"imageUrl"`
	FamilyID           *string          `json:"family_id"`
	ConservationStatus *string          `json:"conservation_status"`
	Description        *string          `json:"description"`
	ThumbnailURL       *string          `json:"thumbnail_url"`
	WormsAphiaID       *int64           `json:"worms_aphia_id"`
	GBIFKey            *int64           `json:"gbif_key"`
	FishbaseID         *int64           `json:"fishbase_id"`
	Sites              []SpeciesSiteRef `json:"sites"`
}

// SpeciesSiteRef is a site link embedded in the full species catalog.
type SpeciesSiteRef struct {
	ID         string `json:"id"`
	Likelihood string `json:"likelihood"`
}

// Scientific returns the scientific name, falling back to the common name.
func (s Species) Scientific() string {
	if s.ScientificName != nil && *s.ScientificName != "" {
		return *s.ScientificName
	}
	return s.Name
}

// SiteSpeciesDoc is the top-level shape of site_species.json.
type SiteSpeciesDoc struct {
	Links []SiteSpeciesLink `json:"site_species"`
}

// SiteSpeciesLink joins one site with one species, with provenance.
type SiteSpeciesLink struct {
	SiteID            string  `json:"site_id"`
	SpeciesID         string  `json:"species_id"`
	Likelihood        string  `json:"likelihood"`
	SeasonMonths      []int   `json:"season_months"`
	DepthMinM         *int64  `json:"depth_min_m"`
	DepthMaxM         *int64  `json:"depth_max_m"`
	Source            *string `json:"source"`
	SourceRecordCount *int64  `json:"source_record_count"`
	LastUpdated       *string `json:"last_updated"`
}

// MediaDoc is the top-level shape of site_media.json.
type MediaDoc struct {
	Media []Media `json:"media"`
}

// Media is one site image record with license provenance.
type Media struct {
	ID                string  `json:"id"`
	SiteID            string  `json:"siteId"`
	Kind              *string `json:"kind"`
	URL               string  `json:"url"`
	Width             *int64  `json:"width"`
	Height            *int64  `json:"height"`
	License           *string `json:"license"`
	Attribution       *string `json:"attribution"`
	SourceURL         *string `json:"sourceUrl"`
	SHA256            *string `json:"sha256"`
	IsRedistributable *bool   `json:"isRedistributable"`
}

// DescriptionsDoc is the top-level shape of
// species_descriptions_enhanced.json, keyed by species id.
type DescriptionsDoc struct {
	Species map[string]DescriptionEntry `json:"species"`
}

// DescriptionEntry wraps the structured visual description of a species.
type DescriptionEntry struct {
	Visual *VisualDescription `json:"visual_description"`
}

// VisualDescription is the structured output of the description generator.
type VisualDescription struct {
	BodyShape           string   `json:"body_shape"`
	Colors              Colors   `json:"colors"`
	Patterns            []string `json:"patterns"`
	DistinctiveFeatures []string `json:"distinctive_features"`
	SizeCM              *float64 `json:"size_cm"`
}

// Colors holds the primary color and accent colors of a species. Accents
// appears in the wild both as a string and as a list of strings.
type Colors struct {
	Primary string     `json:"primary"`
	Accents StringList `json:"accents"`
}

// StringList accepts either a JSON string or an array of strings.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*l = nil
		} else {
			*l = StringList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = StringList(many)
	return nil
}

// PhotosDoc is the top-level shape of the species image files
// (iNaturalist and Wikimedia), keyed by species id.
type PhotosDoc struct {
	Species map[string]PhotoEntry `json:"species"`
}

// PhotoEntry lists fetched photos for one species, best first.
type PhotoEntry struct {
	Photos []Photo `json:"photos"`
}

// Photo is one fetched species photo.
type Photo struct {
	URL         string  `json:"url"`
	License     *string `json:"license"`
	Attribution *string `json:"attribution"`
}

// FirstURL returns the URL of the best photo, or empty when none exists.
func (e PhotoEntry) FirstURL() string {
	if len(e.Photos) == 0 {
		return ""
	}
	return e.Photos[0].URL
}
