package transform_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vegdata/vegmat/pkg/community"
	"github.com/vegdata/vegmat/pkg/transform"
)

func covers(t *testing.T, values []float64) *community.Matrix {
	t.Helper()
	m, err := community.New(
		[]string{"s1", "s2"},
		[]string{"sp1", "sp2", "sp3"},
		values,
	)
	require.NoError(t, err)
	return m
}

func TestByName(t *testing.T) {
	for _, name := range transform.Names {
		f, err := transform.ByName(name)
		assert.NoError(t, err, name)
		assert.NotNil(t, f, name)
	}

	_, err := transform.ByName("wisconsin")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "wisconsin")
}

func TestTotal(t *testing.T) {
	m := covers(t, []float64{1, 3, 0, 2, 2, 6})

	res, err := transform.Total(m)
	require.NoError(t, err)

	for _, row := range res.RowLabels() {
		vals, err := res.Row(row)
		require.NoError(t, err)
		var sum float64
		for _, v := range vals {
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-12, row)
	}
	v, err := res.Value("s1", "sp2")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, v, 1e-12)

	// the input is untouched
	v, err = m.Value("s1", "sp2")
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

func TestTotalZeroRow(t *testing.T) {
	m := covers(t, []float64{0, 0, 0, 2, 2, 6})

	_, err := transform.Total(m)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "s1")
}

func TestMax(t *testing.T) {
	m := covers(t, []float64{1, 4, 5, 2, 2, 10})

	res, err := transform.Max(m)
	require.NoError(t, err)

	for _, col := range res.ColLabels() {
		vals, err := res.Column(col)
		require.NoError(t, err)
		var mx float64
		for _, v := range vals {
			if v > mx {
				mx = v
			}
		}
		assert.InDelta(t, 1, mx, 1e-12, col)
	}
	v, err := res.Value("s1", "sp3")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestMaxZeroColumn(t *testing.T) {
	m := covers(t, []float64{1, 0, 5, 2, 0, 10})

	_, err := transform.Max(m)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sp2")
}

func TestHellinger(t *testing.T) {
	m := covers(t, []float64{1, 3, 0, 2, 2, 6})

	res, err := transform.Hellinger(m)
	require.NoError(t, err)

	// squared cells are relative abundances, so each row has unit norm
	for _, row := range res.RowLabels() {
		vals, err := res.Row(row)
		require.NoError(t, err)
		var sq float64
		for _, v := range vals {
			sq += v * v
		}
		assert.InDelta(t, 1, sq, 1e-12, row)
	}
	v, err := res.Value("s1", "sp1")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)
}

func TestHellingerZeroRow(t *testing.T) {
	m := covers(t, []float64{0, 0, 0, 2, 2, 6})

	_, err := transform.Hellinger(m)
	assert.Error(t, err)
}

func TestChord(t *testing.T) {
	m := covers(t, []float64{3, 4, 0, 1, 2, 2})

	res, err := transform.Chord(m)
	require.NoError(t, err)

	v, err := res.Value("s1", "sp1")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, v, 1e-12)
	v, err = res.Value("s1", "sp2")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, v, 1e-12)

	for _, row := range res.RowLabels() {
		vals, err := res.Row(row)
		require.NoError(t, err)
		var sq float64
		for _, v := range vals {
			sq += v * v
		}
		assert.InDelta(t, 1, math.Sqrt(sq), 1e-12, row)
	}
}

func TestChordZeroRow(t *testing.T) {
	m := covers(t, []float64{0, 0, 0, 1, 2, 2})

	_, err := transform.Chord(m)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "s1")
}

func TestLog1p(t *testing.T) {
	m := covers(t, []float64{0, 1, math.E - 1, 2, 2, 6})

	res, err := transform.Log1p(m)
	require.NoError(t, err)

	v, err := res.Value("s1", "sp1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
	v, err = res.Value("s1", "sp3")
	require.NoError(t, err)
	assert.InDelta(t, 1, v, 1e-12)
}

func TestPresenceAbsence(t *testing.T) {
	m := covers(t, []float64{0, 0.5, 30, 2, 0, 6})

	res, err := transform.PresenceAbsence(m)
	require.NoError(t, err)

	want := [][]float64{{0, 1, 1}, {1, 0, 1}}
	for i, row := range res.RowLabels() {
		vals, err := res.Row(row)
		require.NoError(t, err)
		assert.Equal(t, want[i], vals, row)
	}
}

func TestNegativeCoversRejected(t *testing.T) {
	m := covers(t, []float64{1, -2, 3, 4, 5, 6})

	for _, name := range []string{"total", "max", "hellinger", "log1p"} {
		f, err := transform.ByName(name)
		require.NoError(t, err)
		_, err = f(m)
		assert.Error(t, err, name)
		assert.Contains(t, err.Error(), "sp2", name)
	}
}

func TestTransformKeepsFactorLevels(t *testing.T) {
	m := covers(t, []float64{1, 3, 0, 2, 2, 6})
	require.NoError(t, m.SetLevels("sp3", []string{"NO", "YES"}))

	res, err := transform.PresenceAbsence(m)
	require.NoError(t, err)

	assert.True(t, res.IsFactor("sp3"))
	assert.Equal(t, []string{"NO", "YES"}, res.Levels("sp3"))
}
