// Package ordination fits unconstrained and constrained ordinations on
// community matrices and derives the layouts and statistics ecologists
// read them through.
//
// The linear algebra is gonum's; this package owns the conventions:
// which matrix is centered, how site and descriptor scores are scaled
// in a biplot, and how explained variance is adjusted for the number
// of constraints. Factor columns are refused everywhere, callers
// dummy-encode them first.
package ordination

import (
	"slices"

	"github.com/vegdata/vegmat/pkg/community"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PCA is a fitted principal component analysis. Eigenvalues are column
// variances of the component scores in descending order; eigenvectors
// are unit-length and span the same components.
type PCA struct {
	sites       []string
	descriptors []string
	eig         []float64
	vectors     *mat.Dense // p x k, eigenvectors in columns
	scores      *mat.Dense // n x k, centered data times eigenvectors
	n           int
}

// FitPCA decomposes a numeric matrix into principal components.
// Columns are centered by their means before projection; any prior
// rescaling (Hellinger, z-scores) is the caller's business. Factor
// columns make no sense in a Euclidean decomposition and are refused.
func FitPCA(m *community.Matrix) (*PCA, error) {
	for _, col := range m.ColLabels() {
		if m.IsFactor(col) {
			return nil, FactorColumnError("pca", col)
		}
	}
	n := m.Rows()
	if n < 2 {
		return nil, TooFewSitesError("pca", n)
	}

	x := m.Dense()
	var pc stat.PC
	if !pc.PrincipalComponents(x, nil) {
		return nil, DecompositionError("pca")
	}
	eig := pc.VarsTo(nil)
	if floats.Sum(eig) == 0 {
		return nil, NoVarianceError("pca")
	}
	var vectors mat.Dense
	pc.VectorsTo(&vectors)

	centerColumns(x)
	var scores mat.Dense
	scores.Mul(x, &vectors)

	return &PCA{
		sites:       m.RowLabels(),
		descriptors: m.ColLabels(),
		eig:         eig,
		vectors:     &vectors,
		scores:      &scores,
		n:           n,
	}, nil
}

// SampleSize returns the number of sites the analysis was fitted on.
func (p *PCA) SampleSize() int {
	return p.n
}

// Components returns the number of extracted components.
func (p *PCA) Components() int {
	return len(p.eig)
}

// Sites returns the site labels in score-row order.
func (p *PCA) Sites() []string {
	return slices.Clone(p.sites)
}

// Descriptors returns the descriptor labels in eigenvector-row order.
func (p *PCA) Descriptors() []string {
	return slices.Clone(p.descriptors)
}

// Eigenvalues returns the component variances in descending order.
func (p *PCA) Eigenvalues() []float64 {
	return slices.Clone(p.eig)
}

// TotalVariance returns the summed eigenvalues, the total variance of
// the centered data.
func (p *PCA) TotalVariance() float64 {
	return floats.Sum(p.eig)
}

// Proportions returns the share of total variance each component
// explains.
func (p *PCA) Proportions() []float64 {
	total := p.TotalVariance()
	res := make([]float64, len(p.eig))
	for i, v := range p.eig {
		res[i] = v / total
	}
	return res
}

// Scores returns a copy of the site scores, one row per site, one
// column per component.
func (p *PCA) Scores() *mat.Dense {
	return mat.DenseCopyOf(p.scores)
}

// Vectors returns a copy of the eigenvectors, one row per descriptor,
// one column per component.
func (p *PCA) Vectors() *mat.Dense {
	return mat.DenseCopyOf(p.vectors)
}

// centerColumns subtracts column means in place.
func centerColumns(d *mat.Dense) {
	r, c := d.Dims()
	col := make([]float64, r)
	for j := range c {
		mat.Col(col, j, d)
		mean := stat.Mean(col, nil)
		for i := range r {
			d.Set(i, j, col[i]-mean)
		}
	}
}
