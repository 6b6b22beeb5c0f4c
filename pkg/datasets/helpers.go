package datasets

import (
	"fmt"
	"strings"
)

// Select picks datasets by name, preserving configuration order. An
// empty selection returns every dataset. Names that match nothing
// come back as warnings; a selection matching nothing at all is an
// error.
func (c *DatasetsConfig) Select(names []string) ([]DatasetConfig, []string, error) {
	if len(names) == 0 {
		return c.Datasets, nil, nil
	}

	requested := make(map[string]bool, len(names))
	for _, n := range names {
		requested[strings.TrimSpace(n)] = true
	}

	var selected []DatasetConfig
	found := make(map[string]bool)
	for _, d := range c.Datasets {
		if requested[d.Name] {
			selected = append(selected, d)
			found[d.Name] = true
		}
	}

	var warnings []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if !found[n] {
			warnings = append(warnings,
				fmt.Sprintf("dataset %q not found in configuration", n),
			)
		}
	}

	if len(selected) == 0 {
		return nil, warnings, fmt.Errorf(
			"no datasets matched %v", names,
		)
	}
	return selected, warnings, nil
}

// DelimiterRune converts the configured delimiter name into the rune
// a CSV reader needs.
func (d DatasetConfig) DelimiterRune() rune {
	if d.Delimiter == "tab" {
		return '\t'
	}
	return ','
}

// Column resolves an observation field to this table's header name,
// falling back to the field name itself.
func (d DatasetConfig) Column(field string) string {
	if name, ok := d.Columns[field]; ok {
		return name
	}
	return field
}
