// Package config provides configuration management for vegmat.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
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
//   - Database: host, port, user, password, database, ssl_mode, fetch_size
//   - Plot: scaling, format, width, height
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Build.DatasetNames, SizeClass, Renumber (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use VEGMAT_ prefix with underscores for nesting:
//
//	VEGMAT_DATABASE_HOST=localhost
//	VEGMAT_DATABASE_PORT=5432
//	VEGMAT_LOG_LEVEL=info
//	VEGMAT_JOBS_NUMBER=8
//
// See .envrc.example for complete list with defaults.
package config

import (
	"runtime"
)

// Config represents the complete vegmat configuration.
type Config struct {
	// Database contains PostgreSQL connection settings for survey tables.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Build contains settings specific to the matrix command.
	Build BuildConfig `mapstructure:"build" yaml:"build"`

	// Plot contains defaults for biplot rendering.
	Plot PlotConfig `mapstructure:"plot" yaml:"plot"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
// The database is an optional observation source; CSV files need none of it.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// FetchSize defines the number of observation rows fetched per round trip
	// when streaming survey tables. Larger values are faster but use more
	// memory.
	FetchSize int `mapstructure:"fetch_size" yaml:"fetch_size"`
}

// BuildConfig contains settings specific to the matrix command.
type BuildConfig struct {
	// DatasetNames is the list of dataset names to build matrices from.
	// Empty slice means build all datasets from datasets.yaml.
	// The CLI filters datasets and passes only the names to process.
	DatasetNames []string `mapstructure:"dataset_names" yaml:"dataset_names"`

	// SizeClass keeps only observations from plots of the given size class.
	// Nil means no size class filtering.
	SizeClass *float64 `mapstructure:"size_class" yaml:"size_class"`

	// Renumber is true when matrix rows should be relabeled with ordinal
	// site numbers after alignment is verified.
	// Default: false (site keys stay as plot identifiers)
	Renumber *bool `mapstructure:"renumber" yaml:"renumber"`
}

// PlotConfig contains defaults for biplot rendering.
type PlotConfig struct {
	// Scaling selects the biplot projection: 1 preserves inter-site
	// distances, 2 preserves descriptor correlations.
	Scaling int `mapstructure:"scaling" yaml:"scaling"`

	// Format is the image format of saved plots.
	// Valid values: "svg", "png", "pdf"
	Format string `mapstructure:"format" yaml:"format"`

	// Width is the plot width in inches.
	Width float64 `mapstructure:"width" yaml:"width"`

	// Height is the plot height in inches.
	Height float64 `mapstructure:"height" yaml:"height"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
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
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "vegdata",
			SSLMode:   "disable",
			FetchSize: 10_000,
		},
		Plot: PlotConfig{
			Scaling: 2,
			Format:  "svg",
			Width:   7,
			Height:  7,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
