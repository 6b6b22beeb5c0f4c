package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRunsCmd_Exists verifies command construction.
func TestGetRunsCmd_Exists(t *testing.T) {
	cmd := getRunsCmd()
	require.NotNil(t, cmd, "Runs command should exist")
	assert.Equal(t, "runs", cmd.Use,
		"Command name should be runs")
	assert.NotNil(t, cmd.RunE,
		"Runs command should have RunE")
	assert.Contains(t, cmd.Short, "archived",
		"Short description should mention the archive")
}

// TestFormatMetrics verifies deterministic metric formatting.
func TestFormatMetrics(t *testing.T) {
	metrics := map[string]float64{
		"r2":    0.4217,
		"axis1": 5.3333,
		"fill":  0.75,
	}

	out := formatMetrics(metrics)
	assert.Equal(t, "axis1=5.333 fill=0.750 r2=0.422", out,
		"Metrics should be sorted by key")
}

// TestFormatMetrics_Empty verifies an empty metric map formats to an
// empty string.
func TestFormatMetrics_Empty(t *testing.T) {
	assert.Empty(t, formatMetrics(nil))
	assert.Empty(t, formatMetrics(map[string]float64{}))
}
