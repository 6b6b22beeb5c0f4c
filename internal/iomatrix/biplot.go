package iomatrix

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/vegdata/vegmat/pkg/ordination"
)

// WriteBiplotCSV exports a biplot layout as one table: sites and
// descriptor arrows share the coordinate columns, told apart by the
// kind column. The axis headers carry the explained variance.
func WriteBiplotCSV(path string, layout *ordination.BiplotLayout) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"kind", "label", layout.XLabel, layout.YLabel}
	if err = w.Write(header); err != nil {
		return WriteError(path, err)
	}

	write := func(kind string, points []ordination.Point) error {
		for _, p := range points {
			rec := []string{
				kind,
				p.Label,
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
			}
			if err := w.Write(rec); err != nil {
				return WriteError(path, err)
			}
		}
		return nil
	}
	if err = write("site", layout.Sites); err != nil {
		return err
	}
	if err = write("arrow", layout.Arrows); err != nil {
		return err
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

// WriteEigenvaluesCSV exports the eigenvalue table of a fitted PCA:
// one row per axis with its variance, proportion and running total.
func WriteEigenvaluesCSV(path string, p *ordination.PCA) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"axis", "eigenvalue", "proportion", "cumulative"}
	if err = w.Write(header); err != nil {
		return WriteError(path, err)
	}

	props := p.Proportions()
	var cum float64
	for i, eig := range p.Eigenvalues() {
		cum += props[i]
		rec := []string{
			"PC" + strconv.Itoa(i+1),
			strconv.FormatFloat(eig, 'g', -1, 64),
			strconv.FormatFloat(props[i], 'g', -1, 64),
			strconv.FormatFloat(cum, 'g', -1, 64),
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
