package iomatrix

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/vegdata/vegmat/pkg/ordination"
	"gonum.org/v1/gonum/mat"
)

// WriteScoresCSV exports the site scores of a fitted PCA: one row per
// site, one column per principal component.
func WriteScoresCSV(path string, p *ordination.PCA) error {
	return writeDense(path, p.Scores(), p.Sites(), axisNames(p.Components()))
}

// WriteLoadingsCSV exports the descriptor loadings of a fitted PCA:
// one row per descriptor, one column per principal component.
func WriteLoadingsCSV(path string, p *ordination.PCA) error {
	return writeDense(
		path, p.Vectors(), p.Descriptors(), axisNames(p.Components()),
	)
}

func axisNames(k int) []string {
	res := make([]string, k)
	for i := range res {
		res[i] = "PC" + strconv.Itoa(i+1)
	}
	return res
}

func writeDense(path string, d *mat.Dense, rows, cols []string) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(append([]string{""}, cols...)); err != nil {
		return WriteError(path, err)
	}

	rec := make([]string, len(cols)+1)
	for i, label := range rows {
		rec[0] = label
		for j := range cols {
			rec[j+1] = strconv.FormatFloat(d.At(i, j), 'g', -1, 64)
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
