package seed

import (
	"fmt"
)

// Issue is one validation finding. Fatal issues fail the validate command;
// non-fatal ones are reported as warnings.
type Issue struct {
	Record  string
	Message string
	Fatal   bool
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Record, i.Message)
}

// CheckCoordinates verifies latitude and longitude are present and within
// the valid WGS84 ranges.
func CheckCoordinates(lat, lon float64) (bool, string) {
	if lat < -90 || lat > 90 {
		return false, fmt.Sprintf("invalid latitude: %g", lat)
	}
	if lon < -180 || lon > 180 {
		return false, fmt.Sprintf("invalid longitude: %g", lon)
	}
	return true, ""
}

// ValidateSites checks every site for coordinate validity, required fields
// and duplicate ids.
func ValidateSites(sites []Site) []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(sites))

	for _, s := range sites {
		rec := "site " + orUnknown(s.ID)

		if s.ID == "" {
			issues = append(issues, Issue{rec, "missing id", true})
		} else if seen[s.ID] {
			issues = append(issues, Issue{rec, "duplicate id", true})
		}
		seen[s.ID] = true

		if s.Name == "" {
			issues = append(issues, Issue{rec, "missing name", true})
		}
		if s.Region == "" {
			issues = append(issues, Issue{rec, "missing region", false})
		}
		if ok, msg := CheckCoordinates(s.Latitude, s.Longitude); !ok {
			issues = append(issues, Issue{rec, msg, true})
		}
	}

	return issues
}

// ValidateSpecies checks every species for required fields and duplicate
// ids.
func ValidateSpecies(species []Species) []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(species))

	for _, s := range species {
		rec := "species " + orUnknown(s.ID)

		if s.ID == "" {
			issues = append(issues, Issue{rec, "missing id", true})
		} else if seen[s.ID] {
			issues = append(issues, Issue{rec, "duplicate id", false})
		}
		seen[s.ID] = true

		if s.Name == "" {
			issues = append(issues, Issue{rec, "missing name", true})
		}
		if s.ScientificName == nil || *s.ScientificName == "" {
			issues = append(issues, Issue{rec, "missing scientificName", false})
		}
	}

	return issues
}

// ValidateLinks checks referential integrity of site-species links against
// the known site and species ids. Dangling references are non-fatal: the
// seeder drops them, but they usually indicate an upstream merge problem.
func ValidateLinks(
	links []SiteSpeciesLink,
	siteIDs, speciesIDs map[string]bool,
) []Issue {
	var issues []Issue

	for _, l := range links {
		rec := fmt.Sprintf("link %s|%s", orUnknown(l.SiteID), orUnknown(l.SpeciesID))

		if l.SiteID == "" || l.SpeciesID == "" {
			issues = append(issues, Issue{rec, "missing site_id or species_id", true})
			continue
		}
		if !siteIDs[l.SiteID] {
			issues = append(issues, Issue{rec, "unknown site_id", false})
		}
		if !speciesIDs[l.SpeciesID] {
			issues = append(issues, Issue{rec, "unknown species_id", false})
		}
	}

	return issues
}

func orUnknown(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}
