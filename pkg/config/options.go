package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptPathsDataDir sets the directory holding the seed JSON documents.
func OptPathsDataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Dir", s) {
			c.Paths.DataDir = s
		}
	}
}

// OptPathsOutputDir sets the directory receiving build artifacts.
func OptPathsOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Dir", s) {
			c.Paths.OutputDir = s
		}
	}
}

// OptBuildBatchSize sets the number of rows per bulk INSERT statement.
func OptBuildBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Build.BatchSize = i
		}
	}
}

// OptBuildDatabaseFile sets the filename of the generated seed database.
func OptBuildDatabaseFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database File", s) {
			c.Build.DatabaseFile = s
		}
	}
}

// OptFetchRequestDelayMs sets the fixed delay between API requests.
func OptFetchRequestDelayMs(i int) Option {
	return func(c *Config) {
		if isValidInt("Request Delay", i) {
			c.Fetch.RequestDelayMs = i
		}
	}
}

// OptFetchPhotosPerSpecies caps photos kept per species.
func OptFetchPhotosPerSpecies(i int) Option {
	return func(c *Config) {
		if isValidInt("Photos Per Species", i) {
			c.Fetch.PhotosPerSpecies = i
		}
	}
}

// OptFetchCheckpointEvery sets the fetch progress reporting interval.
func OptFetchCheckpointEvery(i int) Option {
	return func(c *Config) {
		if isValidInt("Checkpoint Every", i) {
			c.Fetch.CheckpointEvery = i
		}
	}
}

// OptUploadAccountID sets the Cloudflare account identifier.
func OptUploadAccountID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Upload Account ID", s) {
			c.Upload.AccountID = s
		}
	}
}

// OptUploadBucket sets the R2 bucket name.
func OptUploadBucket(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Upload Bucket", s) {
			c.Upload.Bucket = s
		}
	}
}

// OptUploadPublicURL sets the CDN base URL for uploaded media.
func OptUploadPublicURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Upload Public URL", s) {
			c.Upload.PublicURL = s
		}
	}
}

// OptUploadAccessKeyID sets the R2 access key.
// Runtime-only field - not in ToOptions().
func OptUploadAccessKeyID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.Upload.AccessKeyID = s
		}
	}
}

// OptUploadSecretAccessKey sets the R2 secret key.
// Runtime-only field - not in ToOptions().
func OptUploadSecretAccessKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s != "" {
			c.Upload.SecretAccessKey = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where log output goes.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory used to derive config, cache and
// log locations. Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Dir", s) {
			c.HomeDir = s
		}
	}
}
