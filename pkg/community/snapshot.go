package community

import "slices"

// Snapshot is an exported, encodable image of a Matrix. The run
// archive stores snapshots in gob form; FromSnapshot restores them for
// reanalysis.
type Snapshot struct {
	Rows   []string
	Cols   []string
	Values []float64

	// Levels holds the level tables of factor columns, keyed by
	// column label.
	Levels map[string][]string
}

// Snapshot copies the matrix into its encodable form.
func (m *Matrix) Snapshot() Snapshot {
	r, c := len(m.rows), len(m.cols)
	values := make([]float64, 0, r*c)
	for i := range r {
		values = append(values, m.data.RawRowView(i)...)
	}

	res := Snapshot{
		Rows:   slices.Clone(m.rows),
		Cols:   slices.Clone(m.cols),
		Values: values,
	}
	if len(m.levels) > 0 {
		res.Levels = make(map[string][]string, len(m.levels))
		for col, lv := range m.levels {
			res.Levels[col] = slices.Clone(lv)
		}
	}
	return res
}

// FromSnapshot rebuilds a Matrix from its encodable form.
func FromSnapshot(s Snapshot) (*Matrix, error) {
	m, err := New(s.Rows, s.Cols, s.Values)
	if err != nil {
		return nil, err
	}
	for col, lv := range s.Levels {
		if err = m.SetLevels(col, lv); err != nil {
			return nil, err
		}
	}
	return m, nil
}
