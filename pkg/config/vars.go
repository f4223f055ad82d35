package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "umiseed"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/umiseed by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files (fetch checkpoints).
// Returns ~/.cache/umiseed by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/umiseed/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/umiseed/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DatabasePath returns the full path of the generated seed database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.OutputDir, c.Build.DatabaseFile)
}
