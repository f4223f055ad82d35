package iopopulate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umilog/umiseed/internal/iodb"
	"github.com/umilog/umiseed/internal/ioschema"
	"github.com/umilog/umiseed/pkg/config"
	"github.com/umilog/umiseed/pkg/db"
	"github.com/umilog/umiseed/pkg/errcode"
)

func setupDB(t *testing.T) db.Operator {
	t.Helper()
	op := iodb.NewSQLiteOperator()
	path := filepath.Join(t.TempDir(), "seed.db")
	require.NoError(t, op.Open(context.Background(), path))
	t.Cleanup(func() { op.Close() })

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(context.Background()))
	return op
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name+".json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testConfig(dataDir string) *config.Config {
	cfg := config.New()
	cfg.Paths.DataDir = dataDir
	return cfg
}

// TestPopulate_FullDataset runs the whole pipeline on a small but
// complete fixture set and checks the derived values.
func TestPopulate_FullDataset(t *testing.T) {
	ctx := context.Background()
	op := setupDB(t)
	dataDir := t.TempDir()

	writeFixture(t, dataDir, "countries", `{
		"countries": [
			{"id": "eg", "name": "Egypt", "continent": "Africa"}
		]
	}`)
	writeFixture(t, dataDir, "regions", `{
		"regions": [
			{"id": "red-sea", "name": "Red Sea", "country_id": "eg"},
			{"id": "med", "name": "Mediterranean"}
		]
	}`)
	writeFixture(t, dataDir, "regions_enriched", `{
		"regions": [
			{"id": "red-sea", "name": "Red Sea",
			 "tagline": "Warm water, big walls",
			 "description": "World class wall diving."}
		]
	}`)
	writeFixture(t, dataDir, "areas", `{
		"areas": [
			{"id": "dahab", "name": "Dahab", "region_id": "red-sea",
			 "country_id": "eg"}
		]
	}`)
	writeFixture(t, dataDir, "families_catalog", `{
		"families": [
			{"id": "fam-1", "name": "Butterflyfish", "scientific_name": "",
			 "category": "Fish"}
		]
	}`)
	writeFixture(t, dataDir, "sites_enriched", `{
		"sites": [
			{"id": "s1", "name": "Blue Hole", "region": "Red Sea",
			 "area": "Dahab", "country": "Egypt",
			 "latitude": 28.57, "longitude": 34.54,
			 "maxDepth": 100, "difficulty": "Advanced"},
			{"id": "s2", "name": "Canyon", "region": "Red Sea",
			 "latitude": 28.55, "longitude": 34.52},
			{"id": "s3", "name": "Ras Mohammed", "region": "Red Sea",
			 "country": "Egypt",
			 "latitude": 27.73, "longitude": 34.25}
		]
	}`)
	writeFixture(t, dataDir, "species_catalog_full", `{
		"species": [
			{"id": "sp1", "name": "Masked Butterflyfish",
			 "scientificName": "Chaetodon semilarvatus",
			 "family_id": "fam-1",
			 "sites": [
				{"id": "s1", "likelihood": "common"},
				{"id": "s2", "likelihood": "sometimes"},
				{"id": "s2", "likelihood": "rare"},
				{"id": "ghost", "likelihood": "common"}
			 ]},
			{"id": "sp1", "name": "Masked Butterflyfish duplicate"},
			{"id": "sp2", "name": "Green Turtle",
			 "sites": [{"id": "s1", "likelihood": "occasional"}]},
			{"id": "sp3", "name": "Bottlenose Dolphin",
			 "sites": [{"id": "s3", "likelihood": "rare"}]},
			{"id": "sp4", "name": "Dugong"},
			{"id": "sp5", "name": "Some Coral"}
		]
	}`)
	writeFixture(t, dataDir, "species_descriptions_enhanced", `{
		"species": {
			"sp1": {"visual_description": {
				"body_shape": "Disc-shaped body",
				"colors": {"primary": "Bright yellow", "accents": "blue"},
				"size_cm": 23
			}}
		}
	}`)
	writeFixture(t, dataDir, "species_images_inaturalist", `{
		"species": {
			"sp1": {"photos": [{"url": "https://inat.example/sp1.jpg"}]}
		}
	}`)
	writeFixture(t, dataDir, "species_images_wikimedia", `{
		"species": {
			"sp1": {"photos": [{"url": "https://wiki.example/sp1.jpg"}]},
			"sp2": {"photos": [{"url": "https://wiki.example/sp2.jpg"}]}
		}
	}`)
	writeFixture(t, dataDir, "site_media", `{
		"media": [
			{"id": "m1", "siteId": "s1", "url": "https://img.example/1.jpg"},
			{"id": "m2", "siteId": "ghost", "url": "https://img.example/2.jpg"}
		]
	}`)

	pop := New(testConfig(dataDir), op)
	stats, err := pop.Populate(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Sites)
	assert.Equal(t, 5, stats.Species)
	assert.Equal(t, 4, stats.Links)

	conn := op.DB()

	// Location comes from area and country; region is the fallback.
	var location string
	err = conn.QueryRowContext(ctx,
		"SELECT location FROM sites WHERE id = 's1'").Scan(&location)
	require.NoError(t, err)
	assert.Equal(t, "Dahab, Egypt", location)

	err = conn.QueryRowContext(ctx,
		"SELECT location FROM sites WHERE id = 's2'").Scan(&location)
	require.NoError(t, err)
	assert.Equal(t, "Red Sea", location)

	// Defaults for missing site attributes.
	var difficulty, siteType string
	err = conn.QueryRowContext(ctx,
		"SELECT difficulty, type FROM sites WHERE id = 's2'").
		Scan(&difficulty, &siteType)
	require.NoError(t, err)
	assert.Equal(t, "Intermediate", difficulty)
	assert.Equal(t, "Reef", siteType)

	// Family scientific name falls back to the common name.
	var famSci string
	err = conn.QueryRowContext(ctx,
		"SELECT scientific_name FROM species_families WHERE id = 'fam-1'").
		Scan(&famSci)
	require.NoError(t, err)
	assert.Equal(t, "Butterflyfish", famSci)

	// First record wins on duplicate species ids.
	var spName string
	err = conn.QueryRowContext(ctx,
		"SELECT name FROM wildlife_species WHERE id = 'sp1'").Scan(&spName)
	require.NoError(t, err)
	assert.Equal(t, "Masked Butterflyfish", spName)

	// Composed description and iNaturalist-first image selection.
	var desc, img string
	err = conn.QueryRowContext(ctx,
		"SELECT description, imageUrl FROM wildlife_species WHERE id = 'sp1'").
		Scan(&desc, &img)
	require.NoError(t, err)
	assert.Equal(t,
		"Disc-shaped body. Bright yellow blue. Typically reaches around 23 cm.",
		desc)
	assert.Equal(t, "https://inat.example/sp1.jpg", img)

	var img2 string
	err = conn.QueryRowContext(ctx,
		"SELECT imageUrl FROM wildlife_species WHERE id = 'sp2'").Scan(&img2)
	require.NoError(t, err)
	assert.Equal(t, "https://wiki.example/sp2.jpg", img2)

	// Inferred categories.
	for id, want := range map[string]string{
		"sp2": "Reptile",
		"sp3": "Mammal",
		"sp4": "Fish",
		"sp5": "Coral",
	} {
		var category string
		err = conn.QueryRowContext(ctx,
			"SELECT category FROM wildlife_species WHERE id = ?", id).
			Scan(&category)
		require.NoError(t, err)
		assert.Equal(t, want, category, "category of %s", id)
	}

	// Unknown likelihood normalizes to occasional.
	var likelihood string
	err = conn.QueryRowContext(ctx, `
		SELECT likelihood FROM site_species
		WHERE site_id = 's2' AND species_id = 'sp1'
	`).Scan(&likelihood)
	require.NoError(t, err)
	assert.Equal(t, "occasional", likelihood)

	// Rarity: sp1 has 2 sites, sp2 and sp3 one each, sp4 and sp5 none.
	for id, want := range map[string]string{
		"sp1": "Common",
		"sp2": "Uncommon",
		"sp3": "Rare",
		"sp4": "Very Rare",
		"sp5": "Very Rare",
	} {
		var rarity string
		err = conn.QueryRowContext(ctx,
			"SELECT rarity FROM wildlife_species WHERE id = ?", id).
			Scan(&rarity)
		require.NoError(t, err)
		assert.Equal(t, want, rarity, "rarity of %s", id)
	}

	// Media pointing at unknown sites is dropped; defaults applied.
	var mediaCount int
	err = conn.QueryRowContext(ctx,
		"SELECT count(*) FROM site_media").Scan(&mediaCount)
	require.NoError(t, err)
	assert.Equal(t, 1, mediaCount)

	var kind string
	var redistributable bool
	err = conn.QueryRowContext(ctx,
		"SELECT kind, is_redistributable FROM site_media WHERE id = 'm1'").
		Scan(&kind, &redistributable)
	require.NoError(t, err)
	assert.Equal(t, "photo", kind)
	assert.True(t, redistributable)

	// Region enrichment merged in.
	var tagline string
	err = conn.QueryRowContext(ctx,
		"SELECT tagline FROM regions WHERE id = 'red-sea'").Scan(&tagline)
	require.NoError(t, err)
	assert.Equal(t, "Warm water, big walls", tagline)
}

// TestPopulate_StandaloneLinksFallback verifies site_species.json is
// used when the catalog carries no embedded links.
func TestPopulate_StandaloneLinksFallback(t *testing.T) {
	ctx := context.Background()
	op := setupDB(t)
	dataDir := t.TempDir()

	writeFixture(t, dataDir, "sites_enriched", `{
		"sites": [
			{"id": "s1", "name": "Blue Hole", "region": "Red Sea",
			 "latitude": 28.57, "longitude": 34.54}
		]
	}`)
	writeFixture(t, dataDir, "species_catalog_v2", `{
		"species": [
			{"id": "sp1", "name": "Green Turtle"}
		]
	}`)
	writeFixture(t, dataDir, "site_species", `{
		"site_species": [
			{"site_id": "s1", "species_id": "sp1", "likelihood": "common",
			 "season_months": [6, 7, 8], "depth_min_m": 5,
			 "source": "obis", "source_record_count": 42},
			{"site_id": "s1", "species_id": "sp1"},
			{"site_id": " ", "species_id": "sp1"},
			{"site_id": "s1", "species_id": "missing"}
		]
	}`)

	pop := New(testConfig(dataDir), op)
	stats, err := pop.Populate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Links)

	var likelihood, seasonMonths, source string
	err = op.DB().QueryRowContext(ctx, `
		SELECT likelihood, season_months, source FROM site_species
		WHERE site_id = 's1' AND species_id = 'sp1'
	`).Scan(&likelihood, &seasonMonths, &source)
	require.NoError(t, err)
	assert.Equal(t, "common", likelihood)
	assert.Equal(t, "[6,7,8]", seasonMonths)
	assert.Equal(t, "obis", source)
}

// TestPopulate_MissingFilesTolerated verifies an empty data directory
// produces an empty but valid database.
func TestPopulate_MissingFilesTolerated(t *testing.T) {
	op := setupDB(t)

	pop := New(testConfig(t.TempDir()), op)
	stats, err := pop.Populate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Sites)
	assert.Equal(t, 0, stats.Species)
	assert.Equal(t, 0, stats.Links)
}

// TestPopulate_MalformedJSONAborts verifies malformed input stops the
// build instead of being skipped.
func TestPopulate_MalformedJSONAborts(t *testing.T) {
	op := setupDB(t)
	dataDir := t.TempDir()

	writeFixture(t, dataDir, "countries", `{"countries": [`)

	pop := New(testConfig(dataDir), op)
	_, err := pop.Populate(context.Background())
	assert.Error(t, err)
}

// TestPopulate_RoundTripIdenticalCounts verifies determinism: seeding
// the same data directory into two fresh databases yields identical
// per-table row counts.
func TestPopulate_RoundTripIdenticalCounts(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	writeFixture(t, dataDir, "countries", `{
		"countries": [
			{"id": "eg", "name": "Egypt", "continent": "Africa"}
		]
	}`)
	writeFixture(t, dataDir, "regions", `{
		"regions": [
			{"id": "red-sea", "name": "Red Sea", "country_id": "eg"}
		]
	}`)
	writeFixture(t, dataDir, "areas", `{
		"areas": [
			{"id": "dahab", "name": "Dahab", "region_id": "red-sea",
			 "country_id": "eg"}
		]
	}`)
	writeFixture(t, dataDir, "families_catalog", `{
		"families": [
			{"id": "fam-1", "name": "Butterflyfish", "category": "Fish"}
		]
	}`)
	writeFixture(t, dataDir, "sites_enriched", `{
		"sites": [
			{"id": "s1", "name": "Blue Hole", "region": "Red Sea",
			 "latitude": 28.57, "longitude": 34.54},
			{"id": "s2", "name": "Canyon", "region": "Red Sea",
			 "latitude": 28.55, "longitude": 34.52}
		]
	}`)
	writeFixture(t, dataDir, "species_catalog_full", `{
		"species": [
			{"id": "sp1", "name": "Masked Butterflyfish",
			 "sites": [
				{"id": "s1", "likelihood": "common"},
				{"id": "s2", "likelihood": "rare"}
			 ]},
			{"id": "sp2", "name": "Green Turtle",
			 "sites": [{"id": "s1", "likelihood": "occasional"}]}
		]
	}`)
	writeFixture(t, dataDir, "site_media", `{
		"media": [
			{"id": "m1", "siteId": "s1", "url": "s1/thumb.webp"}
		]
	}`)

	tables := []string{
		"sites", "wildlife_species", "site_species", "countries",
		"regions", "areas", "species_families", "site_media",
	}

	counts := func(op db.Operator) map[string]int {
		res := make(map[string]int, len(tables))
		for _, table := range tables {
			var n int
			err := op.DB().QueryRowContext(ctx,
				"SELECT count(*) FROM "+table).Scan(&n)
			require.NoError(t, err)
			res[table] = n
		}
		return res
	}

	op1 := setupDB(t)
	stats1, err := New(testConfig(dataDir), op1).Populate(ctx)
	require.NoError(t, err)

	op2 := setupDB(t)
	stats2, err := New(testConfig(dataDir), op2).Populate(ctx)
	require.NoError(t, err)

	assert.Equal(t, stats1, stats2)
	first, second := counts(op1), counts(op2)
	assert.Equal(t, first, second,
		"Both runs should produce identical per-table row counts")
	assert.Equal(t, 2, first["sites"])
	assert.Equal(t, 2, first["wildlife_species"])
	assert.Equal(t, 3, first["site_species"])
	assert.Equal(t, 1, first["site_media"])
}

// TestCollectStats_QueryError verifies a failed count query reports a
// query error, not an insert one.
func TestCollectStats_QueryError(t *testing.T) {
	ctx := context.Background()

	// Open a database without creating the schema.
	op := iodb.NewSQLiteOperator()
	path := filepath.Join(t.TempDir(), "bare.db")
	require.NoError(t, op.Open(ctx, path))
	t.Cleanup(func() { op.Close() })

	p := &populator{cfg: testConfig(t.TempDir()), operator: op}

	_, err := p.collectStats(ctx)
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.PopulateQueryError, gnErr.Code)

	_, err = p.tableIDs(ctx, "wildlife_species")
	require.Error(t, err)
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.PopulateQueryError, gnErr.Code)
}
