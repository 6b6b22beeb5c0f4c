// Package iomatrix moves labeled matrices between memory and CSV
// files.
//
// The on-disk shape is the one ecologists pass around: row labels in
// the first column, descriptor names in the header, factor cells as
// level names. A matrix written by WriteMatrixCSV reads back with
// ReadMatrixCSV, so an exported pair can be reanalyzed without
// touching the survey source again.
package iomatrix

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/vegdata/vegmat/pkg/community"
)

// WriteMatrixCSV exports a labeled matrix. The corner cell stays
// empty; factor columns are written as level names.
func WriteMatrixCSV(path string, m *community.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	cols := m.ColLabels()
	if err = w.Write(append([]string{""}, cols...)); err != nil {
		return WriteError(path, err)
	}

	factors := make([]bool, len(cols))
	for j, col := range cols {
		factors[j] = m.IsFactor(col)
	}

	rec := make([]string, len(cols)+1)
	for i, row := range m.RowLabels() {
		rec[0] = row
		for j, col := range cols {
			if factors[j] {
				level, err := m.Level(row, col)
				if err != nil {
					return WriteError(path, err)
				}
				rec[j+1] = level
				continue
			}
			rec[j+1] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err = w.Write(rec); err != nil {
			return WriteError(path, err)
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

// ReadMatrixCSV imports a matrix exported by WriteMatrixCSV. Columns
// whose every cell parses as a number come back numeric; anything
// else becomes a factor with levels in first-appearance order.
func ReadMatrixCSV(path string) (*community.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ImportError(path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, ImportError(path, err)
	}
	if len(records) == 0 {
		return nil, ImportError(path, fmt.Errorf("no header row"))
	}

	cols := records[0][1:]
	rows := make([]string, 0, len(records)-1)
	cells := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, rec[0])
		cells = append(cells, rec[1:])
	}

	values := make([]float64, len(rows)*len(cols))
	factorLevels := make(map[string][]string)
	for j, col := range cols {
		numeric := true
		for i := range rows {
			if _, err := strconv.ParseFloat(cells[i][j], 64); err != nil {
				numeric = false
				break
			}
		}

		if numeric {
			for i := range rows {
				v, _ := strconv.ParseFloat(cells[i][j], 64)
				values[i*len(cols)+j] = v
			}
			continue
		}

		var levels []string
		index := make(map[string]int)
		for i := range rows {
			cell := cells[i][j]
			idx, ok := index[cell]
			if !ok {
				idx = len(levels)
				index[cell] = idx
				levels = append(levels, cell)
			}
			values[i*len(cols)+j] = float64(idx)
		}
		factorLevels[col] = levels
	}

	m, err := community.New(rows, cols, values)
	if err != nil {
		return nil, err
	}
	for col, levels := range factorLevels {
		if err = m.SetLevels(col, levels); err != nil {
			return nil, err
		}
	}
	return m, nil
}
