package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "vegmat"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/vegmat by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/vegmat by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// DataDir returns the directory path for durable application data.
// Returns ~/.local/share/vegmat by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/vegmat/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/vegmat/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DatasetsFilePath returns the full path to the datasets.yaml file.
// Returns ~/.config/vegmat/datasets.yaml by default.
func DatasetsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "datasets.yaml")
}

// ArchiveFilePath returns the full path to the run archive database.
// The archive records analyses for reproducibility, so it lives with
// durable data, not in the cache.
// Returns ~/.local/share/vegmat/runs.sqlite by default.
func ArchiveFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "runs.sqlite")
}
