package datasets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vegdata/vegmat/pkg/datasets"
)

func validConfig() *datasets.DatasetsConfig {
	size := 1000.0
	return &datasets.DatasetsConfig{
		Datasets: []datasets.DatasetConfig{
			{
				Name:      "gsmnp",
				Path:      "/data/gsmnp.csv",
				Delimiter: "tab",
				Columns:   map[string]string{"species": "taxon_name"},
				SizeClass: &size,
				Canonical: true,
			},
			{
				Name:  "institutional",
				Table: "vegetation.observations",
			},
		},
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	err := cfg.Validate()
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
}

func TestValidateFatal(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*datasets.DatasetsConfig)
	}{
		{
			name: "no datasets",
			mod: func(c *datasets.DatasetsConfig) {
				c.Datasets = nil
			},
		},
		{
			name: "missing name",
			mod: func(c *datasets.DatasetsConfig) {
				c.Datasets[0].Name = ""
			},
		},
		{
			name: "neither path nor table",
			mod: func(c *datasets.DatasetsConfig) {
				c.Datasets[0].Path = ""
			},
		},
		{
			name: "both path and table",
			mod: func(c *datasets.DatasetsConfig) {
				c.Datasets[0].Table = "vegetation.observations"
			},
		},
		{
			name: "duplicate names",
			mod: func(c *datasets.DatasetsConfig) {
				c.Datasets[1].Name = c.Datasets[0].Name
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mod(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	badSize := -5.0
	cfg := &datasets.DatasetsConfig{
		Datasets: []datasets.DatasetConfig{
			{
				Name:      "messy",
				Path:      "/data/messy.csv",
				Delimiter: "semicolon",
				Columns: map[string]string{
					"species":  "taxon",
					"wetness":  "wet",
					"moisture": "moist",
				},
				SizeClass: &badSize,
			},
		},
	}

	err := cfg.Validate()
	require.NoError(t, err)
	assert.Len(t, cfg.Warnings, 4)

	d := cfg.Datasets[0]
	assert.Equal(t, "comma", d.Delimiter)
	assert.Nil(t, d.SizeClass)
	// the valid mapping survives, the bogus ones are dropped
	assert.Equal(t, map[string]string{"species": "taxon"}, d.Columns)

	for _, w := range cfg.Warnings {
		assert.Equal(t, "messy", w.Dataset)
		assert.NotEmpty(t, w.Suggestion)
	}
}

func TestSelect(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())

	all, warnings, err := cfg.Select(nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, all, 2)

	one, warnings, err := cfg.Select([]string{"institutional"})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, one, 1)
	assert.Equal(t, "institutional", one[0].Name)

	some, warnings, err := cfg.Select([]string{"gsmnp", "atbi"})
	require.NoError(t, err)
	require.Len(t, some, 1)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "atbi")

	_, _, err = cfg.Select([]string{"atbi"})
	assert.Error(t, err)
}

func TestDelimiterRune(t *testing.T) {
	d := datasets.DatasetConfig{Delimiter: "tab"}
	assert.Equal(t, '\t', d.DelimiterRune())

	d.Delimiter = "comma"
	assert.Equal(t, ',', d.DelimiterRune())

	d.Delimiter = ""
	assert.Equal(t, ',', d.DelimiterRune())
}

func TestColumn(t *testing.T) {
	d := datasets.DatasetConfig{
		Columns: map[string]string{"species": "taxon_name"},
	}
	assert.Equal(t, "taxon_name", d.Column("species"))
	assert.Equal(t, "cover", d.Column("cover"))
}
