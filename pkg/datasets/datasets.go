// Package datasets provides configuration and validation for survey
// datasets.
//
// This package defines the schema of datasets.yaml, which names the
// survey tables vegmat can build matrices from: where each table
// lives (delimited file or database table), how its columns map onto
// observation fields, and which defaults apply. Loading the file from
// disk is internal/iodatasets' job.
package datasets

// Datasets loads the datasets.yaml configuration.
type Datasets interface {
	Load() (*DatasetsConfig, error)
}

// DatasetsConfig represents the complete datasets.yaml configuration
// file.
type DatasetsConfig struct {
	// Datasets is the list of survey tables available by name.
	Datasets []DatasetConfig `yaml:"datasets"`

	// Warnings holds non-fatal validation issues (not serialized).
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Dataset    string // Name of the dataset
	Field      string // Field that has the issue
	Message    string // Description of the issue
	Suggestion string // How to fix it
}

// DatasetConfig describes a single survey table.
type DatasetConfig struct {
	// Name identifies the dataset on the command line (required).
	Name string `yaml:"name"`

	// Path points to a delimited text file with one observation per
	// row. Exactly one of Path and Table must be set.
	Path string `yaml:"path,omitempty"`

	// Table is a PostgreSQL table or view holding observations,
	// reachable through the configured database connection.
	Table string `yaml:"table,omitempty"`

	// Delimiter is "comma" (default) or "tab". Only meaningful with
	// Path.
	Delimiter string `yaml:"delimiter,omitempty"`

	// Columns remaps observation fields to this table's header names,
	// e.g. species: "taxon_name". Unmapped fields use their own name.
	Columns map[string]string `yaml:"columns,omitempty"`

	// SizeClass, when set, keeps only observations of plots with this
	// size class (square meters).
	SizeClass *float64 `yaml:"size_class,omitempty"`

	// Canonical reduces full scientific names to their canonical form
	// before they become matrix columns.
	Canonical bool `yaml:"canonical,omitempty"`
}

// Field names a column mapping can remap. They match the observation
// fields of pkg/survey.
var knownFields = map[string]bool{
	"plot":        true,
	"date":        true,
	"easting":     true,
	"northing":    true,
	"size_class":  true,
	"species":     true,
	"cover":       true,
	"elevation":   true,
	"tci":         true,
	"stream_dist": true,
	"disturbance": true,
	"solar_rad":   true,
}
