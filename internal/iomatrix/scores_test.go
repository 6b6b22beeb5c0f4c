package iomatrix_test

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vegdata/vegmat/internal/iomatrix"
)

func parseAbs(t *testing.T, s string) float64 {
	t.Helper()
	v, err := strconv.ParseFloat(s, 64)
	require.NoError(t, err)
	return math.Abs(v)
}

func TestWriteScoresCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, iomatrix.WriteScoresCSV(path, testPCA(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, ",PC1,PC2", lines[0])

	// The square cloud centers to (±1, ±2); PC1 carries the larger
	// spread, so scores are ±2 on PC1 and ±1 on PC2 up to axis sign.
	for i, site := range []string{"s1", "s2", "s3", "s4"} {
		fields := strings.Split(lines[i+1], ",")
		require.Len(t, fields, 3)
		assert.Equal(t, site, fields[0])
		assert.InDelta(t, 2, parseAbs(t, fields[1]), 1e-9)
		assert.InDelta(t, 1, parseAbs(t, fields[2]), 1e-9)
	}
}

func TestWriteLoadingsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loadings.csv")
	require.NoError(t, iomatrix.WriteLoadingsCSV(path, testPCA(t)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, ",PC1,PC2", lines[0])

	// Unit eigenvectors: sp2 spans PC1, sp1 spans PC2.
	sp1 := strings.Split(lines[1], ",")
	require.Len(t, sp1, 3)
	assert.Equal(t, "sp1", sp1[0])
	assert.InDelta(t, 0, parseAbs(t, sp1[1]), 1e-9)
	assert.InDelta(t, 1, parseAbs(t, sp1[2]), 1e-9)

	sp2 := strings.Split(lines[2], ",")
	assert.Equal(t, "sp2", sp2[0])
	assert.InDelta(t, 1, parseAbs(t, sp2[1]), 1e-9)
	assert.InDelta(t, 0, parseAbs(t, sp2[2]), 1e-9)
}

func TestWriteScoresCSV_BadPath(t *testing.T) {
	err := iomatrix.WriteScoresCSV(
		filepath.Join(t.TempDir(), "missing", "scores.csv"), testPCA(t),
	)
	require.Error(t, err)
}
