package community_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vegdata/vegmat/pkg/community"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		cols    []string
		values  []float64
		wantErr bool
	}{
		{
			name:   "values cover every cell",
			rows:   []string{"s1", "s2"},
			cols:   []string{"sp1", "sp2", "sp3"},
			values: []float64{1, 2, 3, 4, 5, 6},
		},
		{
			name: "nil values produce a zero matrix",
			rows: []string{"s1"},
			cols: []string{"sp1"},
		},
		{
			name:    "no rows",
			rows:    nil,
			cols:    []string{"sp1"},
			wantErr: true,
		},
		{
			name:    "no columns",
			rows:    []string{"s1"},
			cols:    nil,
			wantErr: true,
		},
		{
			name:    "short values slice",
			rows:    []string{"s1", "s2"},
			cols:    []string{"sp1"},
			values:  []float64{1},
			wantErr: true,
		},
		{
			name:    "duplicate row label",
			rows:    []string{"s1", "s1"},
			cols:    []string{"sp1"},
			wantErr: true,
		},
		{
			name:    "duplicate column label",
			rows:    []string{"s1"},
			cols:    []string{"sp1", "sp1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := community.New(tt.rows, tt.cols, tt.values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.rows), m.Rows())
			assert.Equal(t, len(tt.cols), m.Cols())
		})
	}
}

func TestMatrixAccessors(t *testing.T) {
	m, err := community.New(
		[]string{"s1", "s2"},
		[]string{"sp1", "sp2", "sp3"},
		[]float64{
			1, 2, 3,
			4, 0, 6,
		},
	)
	require.NoError(t, err)

	t.Run("labels are copies in matrix order", func(t *testing.T) {
		rows := m.RowLabels()
		assert.Equal(t, []string{"s1", "s2"}, rows)
		rows[0] = "mutated"
		assert.Equal(t, []string{"s1", "s2"}, m.RowLabels())
	})

	t.Run("At addresses by position", func(t *testing.T) {
		assert.Equal(t, 6.0, m.At(1, 2))
	})

	t.Run("Value addresses by label", func(t *testing.T) {
		v, err := m.Value("s2", "sp1")
		require.NoError(t, err)
		assert.Equal(t, 4.0, v)
	})

	t.Run("Value rejects unknown labels", func(t *testing.T) {
		_, err := m.Value("nope", "sp1")
		assert.Error(t, err)
		_, err = m.Value("s1", "nope")
		assert.Error(t, err)
	})

	t.Run("Column and Row return copies", func(t *testing.T) {
		col, err := m.Column("sp2")
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 0}, col)

		row, err := m.Row("s1")
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2, 3}, row)
	})

	t.Run("Dense is a defensive copy", func(t *testing.T) {
		d := m.Dense()
		d.Set(0, 0, 99)
		assert.Equal(t, 1.0, m.At(0, 0))
	})

	t.Run("NonZero counts filled cells", func(t *testing.T) {
		assert.Equal(t, 5, m.NonZero())
	})
}

func TestMatrixFactors(t *testing.T) {
	m, err := community.New(
		[]string{"s1", "s2", "s3"},
		[]string{"elevation", "disturbance"},
		[]float64{
			800, 0,
			650, 2,
			700, 1,
		},
	)
	require.NoError(t, err)

	levels := []string{"CORPLOG", "SETTLE", "VIRGIN"}
	require.NoError(t, m.SetLevels("disturbance", levels))

	t.Run("IsFactor", func(t *testing.T) {
		assert.True(t, m.IsFactor("disturbance"))
		assert.False(t, m.IsFactor("elevation"))
	})

	t.Run("Levels returns a copy", func(t *testing.T) {
		lv := m.Levels("disturbance")
		assert.Equal(t, levels, lv)
		lv[0] = "mutated"
		assert.Equal(t, levels, m.Levels("disturbance"))
		assert.Nil(t, m.Levels("elevation"))
	})

	t.Run("Level decodes cells", func(t *testing.T) {
		lv, err := m.Level("s2", "disturbance")
		require.NoError(t, err)
		assert.Equal(t, "VIRGIN", lv)
	})

	t.Run("Level refuses numeric columns", func(t *testing.T) {
		_, err := m.Level("s1", "elevation")
		assert.Error(t, err)
	})

	t.Run("SetLevels refuses unknown columns", func(t *testing.T) {
		err := m.SetLevels("aspect", levels)
		assert.Error(t, err)
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	m, err := community.New(
		[]string{"s1", "s2"},
		[]string{"elevation", "disturbance"},
		[]float64{
			800, 1,
			650, 0,
		},
	)
	require.NoError(t, err)
	require.NoError(t, m.SetLevels("disturbance", []string{"SETTLE", "VIRGIN"}))

	snap := m.Snapshot()
	back, err := community.FromSnapshot(snap)
	require.NoError(t, err)

	assert.Equal(t, m.RowLabels(), back.RowLabels())
	assert.Equal(t, m.ColLabels(), back.ColLabels())
	assert.Equal(t, m.At(0, 0), back.At(0, 0))
	assert.Equal(t, m.Levels("disturbance"), back.Levels("disturbance"))

	lv, err := back.Level("s1", "disturbance")
	require.NoError(t, err)
	assert.Equal(t, "VIRGIN", lv)
}
