// Package community builds site-by-species matrices from long-format
// vegetation survey tables.
//
// Build turns observations into a pair of row-aligned matrices: a
// community matrix (sampling events by species, cells hold mean cover)
// and an environmental matrix (same rows, columns hold site covariates).
// The pair is the unit every downstream ordination consumes, so the
// package is strict about row alignment and loud when it breaks.
package community

import (
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense numeric matrix with string labels on both axes.
// Once built it is treated as immutable; accessors hand out copies.
type Matrix struct {
	rows     []string
	cols     []string
	rowIndex map[string]int
	colIndex map[string]int
	data     *mat.Dense

	// levels maps a factor column to its level table. A factor cell
	// holds an index into that table.
	levels map[string][]string
}

// New creates a labeled matrix. Values are row-major and must cover
// every cell; nil values produce a zero matrix. Labels must be unique
// per axis.
func New(rows, cols []string, values []float64) (*Matrix, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, EmptyMatrixError(len(rows), len(cols))
	}
	if values != nil && len(values) != len(rows)*len(cols) {
		return nil, ValuesShapeError(len(rows), len(cols), len(values))
	}

	rowIndex := make(map[string]int, len(rows))
	for i, r := range rows {
		if _, ok := rowIndex[r]; ok {
			return nil, DuplicateLabelError("row", r)
		}
		rowIndex[r] = i
	}
	colIndex := make(map[string]int, len(cols))
	for j, c := range cols {
		if _, ok := colIndex[c]; ok {
			return nil, DuplicateLabelError("column", c)
		}
		colIndex[c] = j
	}

	if values == nil {
		values = make([]float64, len(rows)*len(cols))
	}
	res := &Matrix{
		rows:     slices.Clone(rows),
		cols:     slices.Clone(cols),
		rowIndex: rowIndex,
		colIndex: colIndex,
		data:     mat.NewDense(len(rows), len(cols), slices.Clone(values)),
	}
	return res, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return len(m.rows)
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return len(m.cols)
}

// RowLabels returns a copy of the row labels in matrix order.
func (m *Matrix) RowLabels() []string {
	return slices.Clone(m.rows)
}

// ColLabels returns a copy of the column labels in matrix order.
func (m *Matrix) ColLabels() []string {
	return slices.Clone(m.cols)
}

// At returns the cell at row i, column j. It panics when the indices
// are out of range, matching gonum conventions.
func (m *Matrix) At(i, j int) float64 {
	return m.data.At(i, j)
}

// Value returns the cell addressed by labels.
func (m *Matrix) Value(row, col string) (float64, error) {
	i, ok := m.rowIndex[row]
	if !ok {
		return 0, UnknownLabelError("row", row)
	}
	j, ok := m.colIndex[col]
	if !ok {
		return 0, UnknownLabelError("column", col)
	}
	return m.data.At(i, j), nil
}

// RowIndex returns the position of a row label.
func (m *Matrix) RowIndex(row string) (int, bool) {
	i, ok := m.rowIndex[row]
	return i, ok
}

// ColIndex returns the position of a column label.
func (m *Matrix) ColIndex(col string) (int, bool) {
	j, ok := m.colIndex[col]
	return j, ok
}

// Column returns a copy of the named column.
func (m *Matrix) Column(col string) ([]float64, error) {
	j, ok := m.colIndex[col]
	if !ok {
		return nil, UnknownLabelError("column", col)
	}
	res := make([]float64, len(m.rows))
	mat.Col(res, j, m.data)
	return res, nil
}

// Row returns a copy of the named row.
func (m *Matrix) Row(row string) ([]float64, error) {
	i, ok := m.rowIndex[row]
	if !ok {
		return nil, UnknownLabelError("row", row)
	}
	res := make([]float64, len(m.cols))
	mat.Row(res, i, m.data)
	return res, nil
}

// Dense returns a copy of the numeric data. Factor columns come out as
// level indices; use Levels to decode them.
func (m *Matrix) Dense() *mat.Dense {
	return mat.DenseCopyOf(m.data)
}

// NonZero counts cells holding a value other than zero. The ratio of
// NonZero to Rows*Cols is the fill of a community matrix.
func (m *Matrix) NonZero() int {
	var res int
	r, c := m.data.Dims()
	for i := range r {
		for j := range c {
			if m.data.At(i, j) != 0 {
				res++
			}
		}
	}
	return res
}

// SetLevels declares a column categorical and attaches its level
// table. Cells of that column are read as indices into levels.
func (m *Matrix) SetLevels(col string, levels []string) error {
	if _, ok := m.colIndex[col]; !ok {
		return UnknownLabelError("column", col)
	}
	if m.levels == nil {
		m.levels = make(map[string][]string)
	}
	m.levels[col] = slices.Clone(levels)
	return nil
}

// IsFactor reports whether the column carries categorical levels.
func (m *Matrix) IsFactor(col string) bool {
	_, ok := m.levels[col]
	return ok
}

// Levels returns a copy of the level table of a factor column, or nil
// for numeric columns.
func (m *Matrix) Levels(col string) []string {
	lv, ok := m.levels[col]
	if !ok {
		return nil
	}
	return slices.Clone(lv)
}

// Level decodes a factor cell into its level name.
func (m *Matrix) Level(row, col string) (string, error) {
	lv, ok := m.levels[col]
	if !ok {
		return "", NotFactorError(col)
	}
	v, err := m.Value(row, col)
	if err != nil {
		return "", err
	}
	idx := int(v)
	if idx < 0 || idx >= len(lv) {
		return "", LevelRangeError(col, idx, len(lv))
	}
	return lv[idx], nil
}

// relabelRows replaces row labels in place, preserving positions. Used
// by Paired.Renumber after alignment is verified.
func (m *Matrix) relabelRows(rows []string) {
	m.rows = slices.Clone(rows)
	m.rowIndex = make(map[string]int, len(rows))
	for i, r := range rows {
		m.rowIndex[r] = i
	}
}
