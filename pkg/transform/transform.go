// Package transform prepares matrices for ordination.
//
// Community transforms rescale abundance data (relative abundance,
// Hellinger, chord, log, presence/absence); environmental transforms
// prepare covariates for constrained models (centering, z-scores,
// dummy encoding of factors). Every function is pure: the input matrix
// is never touched, the result is a fresh matrix with the same labels.
// Division-based transforms reject degenerate input with coded errors
// instead of emitting NaN.
package transform

import (
	"math"

	"github.com/vegdata/vegmat/pkg/community"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Func is a community transformation usable by name from the CLI.
type Func func(*community.Matrix) (*community.Matrix, error)

// registry maps CLI names to community transforms.
var registry = map[string]Func{
	"total":     Total,
	"max":       Max,
	"hellinger": Hellinger,
	"chord":     Chord,
	"log1p":     Log1p,
	"pa":        PresenceAbsence,
}

// Names lists the community transforms available by name.
var Names = []string{"total", "max", "hellinger", "chord", "log1p", "pa"}

// ByName resolves a community transform by its CLI name.
func ByName(name string) (Func, error) {
	f, ok := registry[name]
	if !ok {
		return nil, UnknownTransformError(name)
	}
	return f, nil
}

// Total rescales each row to relative abundance: cell / row total.
// Rows that sum to zero have no abundance to distribute and are
// rejected.
func Total(m *community.Matrix) (*community.Matrix, error) {
	if err := requireNonNegative(m, "total"); err != nil {
		return nil, err
	}
	d := m.Dense()
	r, c := d.Dims()
	for i := range r {
		row := d.RawRowView(i)
		s := floats.Sum(row)
		if s == 0 {
			return nil, ZeroRowSumError("total", m.RowLabels()[i])
		}
		for j := range c {
			d.Set(i, j, d.At(i, j)/s)
		}
	}
	return rebuild(m, d)
}

// Max rescales each column by its maximum, bringing every species to
// the same [0, 1] scale regardless of how abundant it gets.
func Max(m *community.Matrix) (*community.Matrix, error) {
	if err := requireNonNegative(m, "max"); err != nil {
		return nil, err
	}
	d := m.Dense()
	r, c := d.Dims()
	col := make([]float64, r)
	for j := range c {
		mat.Col(col, j, d)
		mx := floats.Max(col)
		if mx == 0 {
			return nil, ZeroColumnMaxError("max", m.ColLabels()[j])
		}
		for i := range r {
			d.Set(i, j, d.At(i, j)/mx)
		}
	}
	return rebuild(m, d)
}

// Hellinger is the square root of relative abundance. It keeps
// Euclidean-based ordinations meaningful for abundance data, which is
// why it is the default pre-PCA transform for community matrices.
func Hellinger(m *community.Matrix) (*community.Matrix, error) {
	res, err := Total(m)
	if err != nil {
		return nil, HellingerError(err)
	}
	d := res.Dense()
	r, c := d.Dims()
	for i := range r {
		for j := range c {
			d.Set(i, j, math.Sqrt(d.At(i, j)))
		}
	}
	return rebuild(m, d)
}

// Chord rescales each row to unit Euclidean norm.
func Chord(m *community.Matrix) (*community.Matrix, error) {
	d := m.Dense()
	r, c := d.Dims()
	for i := range r {
		norm := floats.Norm(d.RawRowView(i), 2)
		if norm == 0 {
			return nil, ZeroRowNormError("chord", m.RowLabels()[i])
		}
		for j := range c {
			d.Set(i, j, d.At(i, j)/norm)
		}
	}
	return rebuild(m, d)
}

// Log1p applies log(1+x) to every cell, damping dominant covers.
func Log1p(m *community.Matrix) (*community.Matrix, error) {
	if err := requireNonNegative(m, "log1p"); err != nil {
		return nil, err
	}
	d := m.Dense()
	r, c := d.Dims()
	for i := range r {
		for j := range c {
			d.Set(i, j, math.Log1p(d.At(i, j)))
		}
	}
	return rebuild(m, d)
}

// PresenceAbsence reduces covers to 0/1 occurrence.
func PresenceAbsence(m *community.Matrix) (*community.Matrix, error) {
	d := m.Dense()
	r, c := d.Dims()
	for i := range r {
		for j := range c {
			if d.At(i, j) > 0 {
				d.Set(i, j, 1)
			} else {
				d.Set(i, j, 0)
			}
		}
	}
	return rebuild(m, d)
}

// requireNonNegative rejects matrices with negative cells. Abundance
// transforms assume cover data, which cannot go below zero.
func requireNonNegative(m *community.Matrix, op string) error {
	for i, row := range m.RowLabels() {
		for j, col := range m.ColLabels() {
			if m.At(i, j) < 0 {
				return NegativeValueError(op, row, col, m.At(i, j))
			}
		}
	}
	return nil
}

// rebuild assembles a fresh labeled matrix around transformed data,
// carrying factor level tables over untouched.
func rebuild(m *community.Matrix, d *mat.Dense) (*community.Matrix, error) {
	r, _ := d.Dims()
	values := make([]float64, 0, r*m.Cols())
	for i := range r {
		values = append(values, d.RawRowView(i)...)
	}
	res, err := community.New(m.RowLabels(), m.ColLabels(), values)
	if err != nil {
		return nil, err
	}
	for _, col := range m.ColLabels() {
		if lv := m.Levels(col); lv != nil {
			if err = res.SetLevels(col, lv); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}
