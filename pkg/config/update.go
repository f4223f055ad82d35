package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, upload credentials).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Paths.DataDir
	if s != "" {
		res = append(res, OptPathsDataDir(s))
	}
	s = c.Paths.OutputDir
	if s != "" {
		res = append(res, OptPathsOutputDir(s))
	}
	i = c.Build.BatchSize
	if i > 0 {
		res = append(res, OptBuildBatchSize(i))
	}
	s = c.Build.DatabaseFile
	if s != "" {
		res = append(res, OptBuildDatabaseFile(s))
	}
	i = c.Fetch.RequestDelayMs
	if i > 0 {
		res = append(res, OptFetchRequestDelayMs(i))
	}
	i = c.Fetch.PhotosPerSpecies
	if i > 0 {
		res = append(res, OptFetchPhotosPerSpecies(i))
	}
	i = c.Fetch.CheckpointEvery
	if i > 0 {
		res = append(res, OptFetchCheckpointEvery(i))
	}
	s = c.Upload.AccountID
	if s != "" {
		res = append(res, OptUploadAccountID(s))
	}
	s = c.Upload.Bucket
	if s != "" {
		res = append(res, OptUploadBucket(s))
	}
	s = c.Upload.PublicURL
	if s != "" {
		res = append(res, OptUploadPublicURL(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stdout": s, "stderr": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
