// Package config provides configuration management for umiseed.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Paths: data_dir, output_dir
//   - Build: batch_size, database_file
//   - Fetch: request_delay_ms, photos_per_species, checkpoint_every
//   - Upload: account_id, bucket, public_url
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags or process env only):
//   - Upload.AccessKeyID, Upload.SecretAccessKey (secrets, never written
//     to config.yaml)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use UMISEED_ prefix with underscores for nesting:
//
//	UMISEED_PATHS_DATA_DIR=./SeedData
//	UMISEED_BUILD_BATCH_SIZE=500
//	UMISEED_LOG_LEVEL=info
//
// The legacy variable names used by the older seed scripts are honored too:
// SEED_DATA_DIR, OUTPUT_DIR, R2_ACCOUNT_ID, R2_ACCESS_KEY_ID,
// R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME.
package config

// Config represents the complete umiseed configuration.
type Config struct {
	// Paths locates the seed data inputs and build outputs.
	Paths PathsConfig `mapstructure:"paths" yaml:"paths"`

	// Build contains settings specific to the build command.
	Build BuildConfig `mapstructure:"build" yaml:"build"`

	// Fetch contains settings specific to the fetch commands.
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`

	// Upload contains settings for the R2 media upload.
	Upload UploadConfig `mapstructure:"upload" yaml:"upload"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// PathsConfig locates seed data inputs and outputs on disk.
type PathsConfig struct {
	// DataDir is the directory holding the seed JSON documents
	// (sites_enriched.json, species_catalog_full.json, etc.).
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// OutputDir is where build artifacts (the seed database) are written.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// BuildConfig contains settings specific to the build command.
type BuildConfig struct {
	// BatchSize defines the number of rows per bulk INSERT statement.
	// Larger batches are faster but build longer SQL statements.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// DatabaseFile is the filename of the generated seed database,
	// created inside Paths.OutputDir unless an explicit path is given
	// on the command line.
	DatabaseFile string `mapstructure:"database_file" yaml:"database_file"`
}

// FetchConfig contains settings for the checkpointed API scrapers.
type FetchConfig struct {
	// RequestDelayMs is the fixed delay between API requests in
	// milliseconds. WoRMS and iNaturalist both ask for about 1 req/sec.
	RequestDelayMs int `mapstructure:"request_delay_ms" yaml:"request_delay_ms"`

	// PhotosPerSpecies caps how many licensed photos are kept per species.
	PhotosPerSpecies int `mapstructure:"photos_per_species" yaml:"photos_per_species"`

	// CheckpointEvery controls how often (in processed records) fetch
	// progress is reported. The checkpoint log itself is appended after
	// every record.
	CheckpointEvery int `mapstructure:"checkpoint_every" yaml:"checkpoint_every"`
}

// UploadConfig contains settings for the R2 (S3-compatible) media upload.
// Credentials are runtime-only and come from the process environment.
type UploadConfig struct {
	// AccountID is the Cloudflare account identifier used to derive the
	// R2 endpoint https://{account}.r2.cloudflarestorage.com.
	AccountID string `mapstructure:"account_id" yaml:"account_id"`

	// Bucket is the R2 bucket receiving site media.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// PublicURL is the CDN base URL written into site_media.json.
	PublicURL string `mapstructure:"public_url" yaml:"public_url"`

	// AccessKeyID and SecretAccessKey are read from R2_ACCESS_KEY_ID and
	// R2_SECRET_ACCESS_KEY. Never persisted to config.yaml.
	AccessKeyID     string `mapstructure:"-" yaml:"-"`
	SecretAccessKey string `mapstructure:"-" yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Paths: PathsConfig{
			DataDir:   "Resources/SeedData",
			OutputDir: "Resources/SeedDB",
		},
		Build: BuildConfig{
			BatchSize:    500,
			DatabaseFile: "umilog_seed.db",
		},
		Fetch: FetchConfig{
			RequestDelayMs:   1000,
			PhotosPerSpecies: 3,
			CheckpointEvery:  10,
		},
		Upload: UploadConfig{
			Bucket:    "umilog-media",
			PublicURL: "https://media.umilog.app",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
