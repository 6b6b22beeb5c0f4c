package transform

import (
	"fmt"

	"github.com/vegdata/vegmat/pkg/community"
	"gonum.org/v1/gonum/stat"
)

// Standardize converts each numeric column to z-scores (mean 0,
// sample standard deviation 1). Factor columns pass through unchanged
// with their level tables; encode them with DummyEncode when they
// should enter a model. Constant columns cannot be standardized and
// are rejected.
func Standardize(m *community.Matrix) (*community.Matrix, error) {
	d := m.Dense()
	r, _ := d.Dims()
	col := make([]float64, r)
	for j, label := range m.ColLabels() {
		if m.IsFactor(label) {
			continue
		}
		for i := range r {
			col[i] = d.At(i, j)
		}
		mean := stat.Mean(col, nil)
		sd := stat.StdDev(col, nil)
		if sd == 0 {
			return nil, ZeroVarianceError("standardize", label)
		}
		for i := range r {
			d.Set(i, j, (col[i]-mean)/sd)
		}
	}
	return rebuild(m, d)
}

// Center removes column means from numeric columns. Factor columns
// pass through unchanged.
func Center(m *community.Matrix) (*community.Matrix, error) {
	d := m.Dense()
	r, _ := d.Dims()
	col := make([]float64, r)
	for j, label := range m.ColLabels() {
		if m.IsFactor(label) {
			continue
		}
		for i := range r {
			col[i] = d.At(i, j)
		}
		mean := stat.Mean(col, nil)
		for i := range r {
			d.Set(i, j, col[i]-mean)
		}
	}
	return rebuild(m, d)
}

// DummyEncode replaces each factor column with indicator columns, one
// per level after the first. The first level is the reference: a row
// of that level scores zero on every indicator. Dropping the reference
// keeps the encoded matrix full rank, so constrained fits do not fail
// on collinear constraints. Indicator columns are named col=level.
// Numeric columns are copied unchanged, and a matrix without factors
// comes back as a plain copy.
func DummyEncode(m *community.Matrix) (*community.Matrix, error) {
	r := m.Rows()

	var cols []string
	var take []func(i int) (float64, error)

	for j, label := range m.ColLabels() {
		if !m.IsFactor(label) {
			j := j
			cols = append(cols, label)
			take = append(take, func(i int) (float64, error) {
				return m.At(i, j), nil
			})
			continue
		}

		levels := m.Levels(label)
		for _, level := range levels[1:] {
			j, level, label := j, level, label
			cols = append(cols, fmt.Sprintf("%s=%s", label, level))
			take = append(take, func(i int) (float64, error) {
				idx := int(m.At(i, j))
				if idx < 0 || idx >= len(levels) {
					return 0, community.LevelRangeError(label, idx, len(levels))
				}
				if levels[idx] == level {
					return 1, nil
				}
				return 0, nil
			})
		}
	}

	values := make([]float64, 0, r*len(cols))
	for i := range r {
		for _, f := range take {
			v, err := f(i)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}

	return community.New(m.RowLabels(), cols, values)
}
