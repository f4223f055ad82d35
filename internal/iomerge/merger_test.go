package iomerge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umilog/umiseed/pkg/seed"
)

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	sites := []seed.Site{
		{ID: "a", Name: "Blue Hole", Latitude: 28.5719, Longitude: 34.5372},
		{ID: "b", Name: "blue hole", Latitude: 28.5719, Longitude: 34.5372},
		{ID: "c", Name: "Blue Hole", Latitude: 17.3158, Longitude: -87.5347},
	}

	unique := Dedupe(sites)
	require.Len(t, unique, 2)
	assert.Equal(t, "a", unique[0].ID)
	assert.Equal(t, "c", unique[1].ID)
}

func TestDedupe_CoordinatePrecision(t *testing.T) {
	// Same name, coordinates differing past the 4th decimal: duplicates.
	near := []seed.Site{
		{ID: "a", Name: "Canyon", Latitude: 28.55551, Longitude: 34.52001},
		{ID: "b", Name: "Canyon", Latitude: 28.55554, Longitude: 34.52004},
	}
	assert.Len(t, Dedupe(near), 1)

	// Differing in the 3rd decimal: distinct sites.
	far := []seed.Site{
		{ID: "a", Name: "Canyon", Latitude: 28.555, Longitude: 34.52},
		{ID: "b", Name: "Canyon", Latitude: 28.558, Longitude: 34.52},
	}
	assert.Len(t, Dedupe(far), 2)
}

func TestDedupe_AssignsDeterministicIDs(t *testing.T) {
	sites := []seed.Site{
		{Name: "Blue Hole", Latitude: 28.5719, Longitude: 34.5372},
	}

	first := Dedupe(sites)
	second := Dedupe(sites)
	require.Len(t, first, 1)
	assert.NotEmpty(t, first[0].ID)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestMerge_CombinesFiles(t *testing.T) {
	dir := t.TempDir()

	in1 := filepath.Join(dir, "wikidata.json")
	in2 := filepath.Join(dir, "osm.json")
	out := filepath.Join(dir, "merged.json")

	require.NoError(t, os.WriteFile(in1, []byte(`{
		"sites": [
			{"id": "w1", "name": "Blue Hole",
			 "latitude": 28.5719, "longitude": 34.5372, "region": "Red Sea"}
		]
	}`), 0644))
	require.NoError(t, os.WriteFile(in2, []byte(`{
		"sites": [
			{"id": "o1", "name": "Blue Hole",
			 "latitude": 28.5719, "longitude": 34.5372, "region": "Red Sea"},
			{"id": "o2", "name": "Canyon",
			 "latitude": 28.5555, "longitude": 34.52, "region": "Red Sea"}
		]
	}`), 0644))

	m := New()
	count, err := m.Merge(out, []string{in1, in2, filepath.Join(dir, "missing.json")})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	bs, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc seed.SitesDoc
	require.NoError(t, json.Unmarshal(bs, &doc))
	require.Len(t, doc.Sites, 2)
	assert.Equal(t, "w1", doc.Sites[0].ID)
	assert.Equal(t, "o2", doc.Sites[1].ID)
}

func TestMerge_AllInputsMissing(t *testing.T) {
	dir := t.TempDir()
	m := New()
	_, err := m.Merge(
		filepath.Join(dir, "out.json"),
		[]string{filepath.Join(dir, "missing.json")},
	)
	assert.Error(t, err)
}
