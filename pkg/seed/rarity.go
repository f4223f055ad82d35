package seed

import (
	"cmp"
	"slices"
)

// Rarity is the species-level popularity label derived from the number of
// distinct dive sites a species is linked to. It is recomputed on every
// build and never trusted from input files.
type Rarity string

const (
	RarityCommon   Rarity = "Common"
	RarityUncommon Rarity = "Uncommon"
	RarityRare     Rarity = "Rare"
	RarityVeryRare Rarity = "Very Rare"
)

// Percentile cut points: top 20% of linked species are Common, the next 30%
// Uncommon, the next 30% Rare, the bottom 20% Very Rare. Species without any
// site link are always Very Rare.
const (
	commonCut   = 0.20
	uncommonCut = 0.50
	rareCut     = 0.80
)

// SiteCount pairs a species id with its number of linked sites.
type SiteCount struct {
	SpeciesID string
	Sites     int
}

// AssignRarity buckets species by their linked-site counts. Species are
// ranked by count descending (ties broken by id for determinism) and cut at
// the 20/50/80 percentiles. A zero count forces Very Rare regardless of
// percentile position. The returned map has one entry per input.
func AssignRarity(counts []SiteCount) map[string]Rarity {
	res := make(map[string]Rarity, len(counts))
	if len(counts) == 0 {
		return res
	}

	ranked := make([]SiteCount, len(counts))
	copy(ranked, counts)
	slices.SortFunc(ranked, func(a, b SiteCount) int {
		if c := cmp.Compare(b.Sites, a.Sites); c != 0 {
			return c
		}
		return cmp.Compare(a.SpeciesID, b.SpeciesID)
	})

	total := len(ranked)
	common := int(float64(total) * commonCut)
	uncommon := int(float64(total) * uncommonCut)
	rare := int(float64(total) * rareCut)

	for i, sc := range ranked {
		var rarity Rarity
		switch {
		case sc.Sites == 0:
			rarity = RarityVeryRare
		case i < common:
			rarity = RarityCommon
		case i < uncommon:
			rarity = RarityUncommon
		case i < rare:
			rarity = RarityRare
		default:
			rarity = RarityVeryRare
		}
		res[sc.SpeciesID] = rarity
	}

	return res
}
