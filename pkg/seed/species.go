package seed

import (
	"fmt"
	"strings"
)

// Likelihood values allowed in site-species links.
const (
	LikelihoodCommon     = "common"
	LikelihoodOccasional = "occasional"
	LikelihoodRare       = "rare"
)

// NormalizeLikelihood maps arbitrary input to one of the allowed likelihood
// values, defaulting to "occasional".
func NormalizeLikelihood(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case LikelihoodCommon:
		return LikelihoodCommon
	case LikelihoodRare:
		return LikelihoodRare
	default:
		return LikelihoodOccasional
	}
}

var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"Mammal", []string{"whale", "dolphin", "seal", "manatee"}},
	{"Reptile", []string{"turtle", "sea snake", "crocodile"}},
	{"Coral", []string{"coral", "anemone", "sea fan"}},
	{"Invertebrate", []string{
		"octopus", "squid", "jellyfish", "crab", "lobster", "shrimp",
		"nudibranch", "starfish", "urchin", "sponge",
	}},
}

// InferCategory guesses the species category from keywords in its common
// name. Fish is the fallback for anything unrecognized.
func InferCategory(name string) string {
	lower := strings.ToLower(name)
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(lower, w) {
				return ck.category
			}
		}
	}
	return "Fish"
}

// EffectiveCategory returns the species category, inferring it from the
// name when the catalog record has none.
func (s Species) EffectiveCategory() string {
	if s.Category != nil {
		if c := strings.TrimSpace(*s.Category); c != "" {
			return c
		}
	}
	return InferCategory(s.Name)
}

// ComposeDescription renders the structured visual description into the
// prose stored in the seed database. Returns empty string when the entry
// carries nothing usable.
func ComposeDescription(v VisualDescription) string {
	var parts []string

	if v.BodyShape != "" {
		parts = append(parts, sentence(v.BodyShape))
	}

	if v.Colors.Primary != "" {
		line := v.Colors.Primary
		if len(v.Colors.Accents) > 0 {
			line += " " + strings.Join(v.Colors.Accents, ", ")
		}
		parts = append(parts, sentence(line))
	}

	if len(v.Patterns) > 0 && v.Patterns[0] != "" {
		parts = append(parts, sentence(v.Patterns[0]))
	}

	if len(v.DistinctiveFeatures) > 0 {
		features := v.DistinctiveFeatures
		if len(features) > 2 {
			features = features[:2]
		}
		parts = append(parts, fmt.Sprintf(
			"Distinctive features include %s.",
			strings.Join(features, "; "),
		))
	}

	if v.SizeCM != nil {
		parts = append(parts, fmt.Sprintf(
			"Typically reaches around %g cm.", *v.SizeCM,
		))
	}

	return strings.Join(parts, " ")
}

func sentence(s string) string {
	return strings.TrimRight(s, ".") + "."
}
