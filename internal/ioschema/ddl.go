package ioschema

// migrations lists the schema versions of the mobile app that this
// database already satisfies. They are recorded in grdb_migrations so
// the app's migrator treats the shipped file as fully migrated.
var migrations = []string{
	"v1_initial_schema",
	"v3_tags_search_indexes",
	"v4_facets_media_shops_filters",
	"v5_geography_species_taxonomy",
	"v6_gps_draft_planned_sites",
	"v7_sync_trips_user_states",
	"v8_region_descriptions",
	"v9_fts5_incremental_triggers",
}

// ddl holds every statement needed to produce the schema the app
// expects, in dependency order. Column names and defaults must match
// the app's migrations exactly; the app opens this file read-write and
// any drift surfaces as a runtime error on the device.
var ddl = []string{
	// Migration bookkeeping, created first.
	`CREATE TABLE grdb_migrations (
	identifier TEXT NOT NULL PRIMARY KEY
)`,

	// v1: sites, with the v5/v6 geography and planning columns.
	`CREATE TABLE sites (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	location TEXT NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	region TEXT NOT NULL,
	averageDepth REAL NOT NULL,
	maxDepth REAL NOT NULL,
	averageTemp REAL NOT NULL,
	averageVisibility REAL NOT NULL,
	difficulty TEXT NOT NULL,
	type TEXT NOT NULL,
	description TEXT,
	wishlist INTEGER NOT NULL DEFAULT 0,
	visitedCount INTEGER NOT NULL DEFAULT 0,
	createdAt TEXT NOT NULL,
	tags TEXT NOT NULL DEFAULT '[]',
	country_id TEXT,
	region_id TEXT,
	area_id TEXT,
	wikidata_id TEXT,
	osm_id TEXT,
	isPlanned INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE INDEX idx_sites_location ON sites(latitude, longitude)`,
	`CREATE INDEX idx_sites_region ON sites(region)`,
	`CREATE INDEX idx_sites_wishlist ON sites(wishlist)`,
	`CREATE INDEX idx_sites_difficulty ON sites(difficulty)`,
	`CREATE INDEX idx_sites_type ON sites(type)`,
	`CREATE INDEX idx_sites_lat_lon ON sites(latitude, longitude)`,
	`CREATE INDEX idx_sites_country ON sites(country_id)`,
	`CREATE INDEX idx_sites_region_id ON sites(region_id)`,
	`CREATE INDEX idx_sites_area_id ON sites(area_id)`,
	`CREATE INDEX idx_sites_planned ON sites(isPlanned)`,

	// v1: dives, with the v6 GPS-draft columns. A dive either points
	// at a site or carries pending coordinates.
	`CREATE TABLE dives (
	id TEXT PRIMARY KEY,
	siteId TEXT REFERENCES sites(id) ON DELETE RESTRICT,
	pendingLatitude REAL,
	pendingLongitude REAL,
	date TEXT NOT NULL,
	startTime TEXT NOT NULL,
	endTime TEXT,
	maxDepth REAL NOT NULL,
	averageDepth REAL,
	bottomTime INTEGER NOT NULL,
	startPressure INTEGER NOT NULL,
	endPressure INTEGER NOT NULL,
	temperature REAL NOT NULL,
	visibility REAL NOT NULL,
	current TEXT NOT NULL,
	conditions TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	instructorName TEXT,
	instructorNumber TEXT,
	signed INTEGER NOT NULL DEFAULT 0,
	createdAt TEXT NOT NULL,
	updatedAt TEXT NOT NULL,
	CHECK (siteId IS NOT NULL OR (pendingLatitude IS NOT NULL AND pendingLongitude IS NOT NULL))
)`,
	`CREATE INDEX idx_dives_start_time ON dives(startTime)`,
	`CREATE INDEX idx_dives_site ON dives(siteId)`,
	`CREATE INDEX idx_dives_date ON dives(date)`,
	`CREATE INDEX idx_dives_pending_gps ON dives(pendingLatitude, pendingLongitude)`,

	// v1: wildlife_species, with the v5 taxonomy columns.
	`CREATE TABLE wildlife_species (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	scientificName TEXT NOT NULL,
	category TEXT NOT NULL,
	rarity TEXT NOT NULL,
	regions TEXT NOT NULL,
	imageUrl TEXT,
	family_id TEXT,
	conservation_status TEXT,
	description TEXT,
	thumbnail_url TEXT,
	worms_aphia_id INTEGER,
	gbif_key INTEGER,
	fishbase_id INTEGER
)`,
	`CREATE INDEX idx_species_category ON wildlife_species(category)`,
	`CREATE INDEX idx_species_rarity ON wildlife_species(rarity)`,
	`CREATE INDEX idx_species_family ON wildlife_species(family_id)`,
	`CREATE INDEX idx_species_scientific ON wildlife_species(scientificName)`,

	// v1: sightings.
	`CREATE TABLE sightings (
	id TEXT PRIMARY KEY,
	diveId TEXT NOT NULL REFERENCES dives(id) ON DELETE CASCADE,
	speciesId TEXT NOT NULL REFERENCES wildlife_species(id) ON DELETE RESTRICT,
	count INTEGER NOT NULL DEFAULT 1,
	notes TEXT,
	createdAt TEXT NOT NULL
)`,
	`CREATE INDEX idx_sightings_dive ON sightings(diveId)`,
	`CREATE INDEX idx_sightings_species ON sightings(speciesId)`,

	// v3: site tags.
	`CREATE TABLE site_tags (
	site_id TEXT NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
	tag TEXT NOT NULL,
	PRIMARY KEY (site_id, tag) ON CONFLICT REPLACE
)`,
	`CREATE INDEX idx_site_tags_tag ON site_tags(tag)`,

	// v4: site facets.
	`CREATE TABLE site_facets (
	site_id TEXT PRIMARY KEY REFERENCES sites(id) ON DELETE CASCADE,
	difficulty TEXT NOT NULL,
	entry_modes TEXT NOT NULL DEFAULT '[]',
	notable_features TEXT NOT NULL DEFAULT '[]',
	visibility_mean REAL,
	temp_mean REAL,
	seasonality_json TEXT DEFAULT '{}',
	shop_count INTEGER NOT NULL DEFAULT 0,
	image_asset_ids TEXT NOT NULL DEFAULT '[]',
	has_current INTEGER NOT NULL DEFAULT 0,
	min_depth REAL,
	max_depth REAL,
	is_beginner INTEGER NOT NULL DEFAULT 0,
	is_advanced INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX idx_site_facets_difficulty ON site_facets(difficulty)`,
	`CREATE INDEX idx_site_facets_has_current ON site_facets(has_current)`,

	// v4: site media.
	`CREATE TABLE site_media (
	id TEXT PRIMARY KEY,
	site_id TEXT NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
	kind TEXT NOT NULL,
	url TEXT NOT NULL,
	width INTEGER,
	height INTEGER,
	license TEXT,
	attribution TEXT,
	source_url TEXT,
	sha256 TEXT,
	is_redistributable INTEGER NOT NULL DEFAULT 1
)`,
	`CREATE INDEX idx_site_media_site ON site_media(site_id)`,

	// v4: dive shops.
	`CREATE TABLE dive_shops (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	country TEXT,
	region TEXT,
	area TEXT,
	latitude REAL,
	longitude REAL,
	website TEXT,
	phone TEXT,
	email TEXT,
	services TEXT NOT NULL DEFAULT '[]',
	license TEXT,
	source_url TEXT
)`,

	// v4: site-shop associations.
	`CREATE TABLE site_shops (
	site_id TEXT NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
	shop_id TEXT NOT NULL REFERENCES dive_shops(id) ON DELETE CASCADE,
	distance_km REAL,
	PRIMARY KEY (site_id, shop_id) ON CONFLICT REPLACE
)`,

	// v4: materialized filter counts.
	`CREATE TABLE site_filters_materialized (
	region TEXT,
	area TEXT,
	facet TEXT NOT NULL,
	value TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (region, area, facet, value) ON CONFLICT REPLACE
)`,

	// v5: countries.
	`CREATE TABLE countries (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	name_local TEXT,
	continent TEXT NOT NULL,
	wikidata_id TEXT
)`,
	`CREATE INDEX idx_countries_continent ON countries(continent)`,

	// v5: regions, with the v8 editorial columns.
	`CREATE TABLE regions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	country_id TEXT REFERENCES countries(id) ON DELETE SET NULL,
	latitude REAL,
	longitude REAL,
	wikidata_id TEXT,
	tagline TEXT,
	description TEXT
)`,
	`CREATE INDEX idx_regions_country ON regions(country_id)`,

	// v5: areas.
	`CREATE TABLE areas (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	region_id TEXT REFERENCES regions(id) ON DELETE SET NULL,
	country_id TEXT REFERENCES countries(id) ON DELETE SET NULL,
	latitude REAL,
	longitude REAL,
	wikidata_id TEXT
)`,
	`CREATE INDEX idx_areas_region ON areas(region_id)`,
	`CREATE INDEX idx_areas_country ON areas(country_id)`,

	// v5: species families.
	`CREATE TABLE species_families (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	scientific_name TEXT NOT NULL,
	category TEXT NOT NULL,
	worms_aphia_id INTEGER,
	gbif_key INTEGER
)`,
	`CREATE INDEX idx_families_category ON species_families(category)`,

	// v5: site-species junction.
	`CREATE TABLE site_species (
	site_id TEXT NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
	species_id TEXT NOT NULL REFERENCES wildlife_species(id) ON DELETE CASCADE,
	likelihood TEXT NOT NULL DEFAULT 'occasional',
	season_months TEXT,
	depth_min_m INTEGER,
	depth_max_m INTEGER,
	source TEXT,
	source_record_count INTEGER,
	last_updated TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (site_id, species_id) ON CONFLICT REPLACE
)`,
	`CREATE INDEX idx_site_species_site ON site_species(site_id)`,
	`CREATE INDEX idx_site_species_species ON site_species(species_id)`,
	`CREATE INDEX idx_site_species_likelihood ON site_species(likelihood)`,

	// v7: sync metadata.
	`CREATE TABLE sync_metadata (
	id TEXT PRIMARY KEY,
	record_type TEXT NOT NULL,
	local_record_id TEXT NOT NULL,
	ck_record_id TEXT,
	ck_system_fields BLOB,
	sync_status TEXT NOT NULL DEFAULT 'pending',
	last_synced_at TEXT,
	local_updated_at TEXT NOT NULL,
	error_message TEXT,
	retry_count INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE UNIQUE INDEX idx_sync_metadata_record ON sync_metadata(record_type, local_record_id)`,
	`CREATE INDEX idx_sync_metadata_status ON sync_metadata(sync_status)`,

	// v7: sync queue.
	`CREATE TABLE sync_queue (
	id TEXT PRIMARY KEY,
	operation TEXT NOT NULL,
	record_type TEXT NOT NULL,
	local_record_id TEXT NOT NULL,
	payload BLOB,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	attempts INTEGER NOT NULL DEFAULT 0,
	last_attempt_at TEXT,
	error_message TEXT,
	priority INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE INDEX idx_sync_queue_priority ON sync_queue(priority)`,
	`CREATE INDEX idx_sync_queue_record ON sync_queue(record_type, local_record_id)`,

	// v7: user site states.
	`CREATE TABLE user_site_states (
	site_id TEXT PRIMARY KEY REFERENCES sites(id) ON DELETE CASCADE,
	is_wishlist INTEGER NOT NULL DEFAULT 0,
	is_planned INTEGER NOT NULL DEFAULT 0,
	user_notes TEXT,
	user_rating INTEGER,
	last_visited_at TEXT,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX idx_user_site_states_wishlist ON user_site_states(is_wishlist)`,
	`CREATE INDEX idx_user_site_states_planned ON user_site_states(is_planned)`,

	// v7: trips.
	`CREATE TABLE trips (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	start_date TEXT,
	end_date TEXT,
	notes TEXT,
	cover_image_url TEXT,
	calendar_event_id TEXT,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX idx_trips_dates ON trips(start_date, end_date)`,

	// v7: trip-sites junction.
	`CREATE TABLE trip_sites (
	trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
	site_id TEXT NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
	sort_order INTEGER NOT NULL DEFAULT 0,
	planned_date TEXT,
	notes TEXT,
	PRIMARY KEY (trip_id, site_id) ON CONFLICT REPLACE
)`,
	`CREATE INDEX idx_trip_sites_trip ON trip_sites(trip_id)`,
	`CREATE INDEX idx_trip_sites_site ON trip_sites(site_id)`,

	// Contentless FTS5 tables, populated through the triggers below.
	`CREATE VIRTUAL TABLE sites_fts USING fts5(
	name, region, location, tags, description,
	content='', contentless_delete=1
)`,
	`CREATE VIRTUAL TABLE species_fts USING fts5(
	name, scientific_name,
	content='', contentless_delete=1
)`,

	// v9: incremental FTS maintenance for sites.
	`CREATE TRIGGER sites_fts_insert AFTER INSERT ON sites BEGIN
	INSERT INTO sites_fts(rowid, name, region, location, tags, description)
	VALUES (NEW.rowid, NEW.name, NEW.region, NEW.location, NEW.tags, NEW.description);
END`,
	`CREATE TRIGGER sites_fts_update AFTER UPDATE ON sites BEGIN
	DELETE FROM sites_fts WHERE rowid = OLD.rowid;
	INSERT INTO sites_fts(rowid, name, region, location, tags, description)
	VALUES (NEW.rowid, NEW.name, NEW.region, NEW.location, NEW.tags, NEW.description);
END`,
	`CREATE TRIGGER sites_fts_delete AFTER DELETE ON sites BEGIN
	DELETE FROM sites_fts WHERE rowid = OLD.rowid;
END`,

	// v9: incremental FTS maintenance for species.
	`CREATE TRIGGER species_fts_insert AFTER INSERT ON wildlife_species BEGIN
	INSERT INTO species_fts(rowid, name, scientific_name)
	VALUES (NEW.rowid, NEW.name, NEW.scientificName);
END`,
	`CREATE TRIGGER species_fts_update AFTER UPDATE ON wildlife_species BEGIN
	DELETE FROM species_fts WHERE rowid = OLD.rowid;
	INSERT INTO species_fts(rowid, name, scientific_name)
	VALUES (NEW.rowid, NEW.name, NEW.scientificName);
END`,
	`CREATE TRIGGER species_fts_delete AFTER DELETE ON wildlife_species BEGIN
	DELETE FROM species_fts WHERE rowid = OLD.rowid;
END`,
}
