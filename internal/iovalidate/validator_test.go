package iovalidate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name+".json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestValidate_CleanDataset(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "sites_enriched", `{
		"sites": [
			{"id": "s1", "name": "Blue Hole", "region": "Red Sea",
			 "latitude": 28.57, "longitude": 34.54}
		]
	}`)
	writeFixture(t, dir, "species_catalog_full", `{
		"species": [
			{"id": "sp1", "name": "Green Turtle",
			 "scientificName": "Chelonia mydas"}
		]
	}`)
	writeFixture(t, dir, "site_species", `{
		"site_species": [
			{"site_id": "s1", "species_id": "sp1", "likelihood": "common"}
		]
	}`)

	report, err := New().Validate(dir)
	require.NoError(t, err)
	assert.False(t, report.Failed())
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	assert.Equal(t, 1, report.Sites)
	assert.Equal(t, 1, report.Species)
	assert.Equal(t, 1, report.Links)
}

func TestValidate_FindsFatalIssues(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "sites_enriched", `{
		"sites": [
			{"id": "s1", "name": "Blue Hole", "region": "Red Sea",
			 "latitude": 128.57, "longitude": 34.54},
			{"id": "s1", "name": "Canyon", "region": "Red Sea",
			 "latitude": 28.55, "longitude": 34.52},
			{"id": "s3", "name": "", "region": "Red Sea",
			 "latitude": 28.55, "longitude": 34.52}
		]
	}`)

	report, err := New().Validate(dir)
	require.NoError(t, err)
	assert.True(t, report.Failed())
	// Out-of-range latitude, duplicate id, missing name.
	assert.Len(t, report.Errors, 3)
}

func TestValidate_DanglingLinksAreWarnings(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "sites_enriched", `{
		"sites": [
			{"id": "s1", "name": "Blue Hole", "region": "Red Sea",
			 "latitude": 28.57, "longitude": 34.54}
		]
	}`)
	writeFixture(t, dir, "species_catalog_full", `{
		"species": [
			{"id": "sp1", "name": "Green Turtle",
			 "scientificName": "Chelonia mydas"}
		]
	}`)
	writeFixture(t, dir, "site_species", `{
		"site_species": [
			{"site_id": "ghost", "species_id": "sp1"}
		]
	}`)

	report, err := New().Validate(dir)
	require.NoError(t, err)
	assert.False(t, report.Failed())
	assert.Len(t, report.Warnings, 1)
}

func TestValidate_MissingFilesSkipped(t *testing.T) {
	report, err := New().Validate(t.TempDir())
	require.NoError(t, err)
	assert.False(t, report.Failed())
	assert.Zero(t, report.Sites)
}

func TestValidate_BadDataDir(t *testing.T) {
	_, err := New().Validate(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
