package datasets

import (
	"fmt"
)

// Validate checks the configuration for errors and applies defaults.
func (c *DatasetsConfig) Validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("no datasets specified in configuration")
	}

	seen := make(map[string]bool, len(c.Datasets))
	for i := range c.Datasets {
		warnings, err := c.Datasets[i].Validate()
		if err != nil {
			return fmt.Errorf("dataset %d: %w", i+1, err)
		}
		if seen[c.Datasets[i].Name] {
			return fmt.Errorf(
				"dataset %d: duplicate name %q", i+1, c.Datasets[i].Name,
			)
		}
		seen[c.Datasets[i].Name] = true
		c.Warnings = append(c.Warnings, warnings...)
	}

	return nil
}

// Validate checks a single dataset configuration. File existence is
// deferred to runtime (I/O layer). Returns warnings for recoverable
// issues and an error for fatal ones.
func (d *DatasetConfig) Validate() ([]ValidationWarning, error) {
	var warnings []ValidationWarning

	if d.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	switch {
	case d.Path == "" && d.Table == "":
		return nil, fmt.Errorf("one of path or table is required")
	case d.Path != "" && d.Table != "":
		return nil, fmt.Errorf("path and table are mutually exclusive")
	}

	switch d.Delimiter {
	case "", "comma", "tab":
	default:
		warnings = append(warnings, ValidationWarning{
			Dataset: d.Name,
			Field:   "delimiter",
			Message: fmt.Sprintf(
				"unknown delimiter %q, falling back to comma", d.Delimiter,
			),
			Suggestion: "Use 'comma' or 'tab'",
		})
		d.Delimiter = "comma"
	}
	if d.Delimiter != "" && d.Table != "" {
		warnings = append(warnings, ValidationWarning{
			Dataset:    d.Name,
			Field:      "delimiter",
			Message:    "delimiter has no effect on a database table",
			Suggestion: "Remove 'delimiter' or switch the dataset to a file path",
		})
	}

	for field := range d.Columns {
		if !knownFields[field] {
			warnings = append(warnings, ValidationWarning{
				Dataset: d.Name,
				Field:   "columns",
				Message: fmt.Sprintf(
					"%q is not an observation field, mapping ignored", field,
				),
				Suggestion: "Map one of: plot, date, easting, northing, size_class, species, cover, elevation, tci, stream_dist, disturbance, solar_rad",
			})
			delete(d.Columns, field)
		}
	}

	if d.SizeClass != nil && *d.SizeClass <= 0 {
		warnings = append(warnings, ValidationWarning{
			Dataset: d.Name,
			Field:   "size_class",
			Message: fmt.Sprintf(
				"size class %g is not positive, filter disabled", *d.SizeClass,
			),
			Suggestion: "Set a positive plot area in square meters, e.g. 1000",
		})
		d.SizeClass = nil
	}

	return warnings, nil
}
