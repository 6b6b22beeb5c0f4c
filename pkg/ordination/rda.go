package ordination

import (
	"slices"

	"github.com/vegdata/vegmat/pkg/community"
	"gonum.org/v1/gonum/mat"
)

// RDA is a fitted redundancy analysis: the part of a community matrix
// that a set of environmental constraints explains, decomposed into
// canonical axes. Total inertia splits exactly into constrained plus
// unconstrained by construction of the least-squares fit.
type RDA struct {
	ord           *PCA
	constraints   []string
	constrained   float64
	unconstrained float64
	total         float64
	n             int
}

// FitRDA regresses the centered response on the selected environmental
// columns and decomposes the fitted values into canonical axes. The
// response and environment must be row-aligned; build them through one
// community.Build call or verify the pair first. Factor constraints
// are refused, dummy-encode them before fitting.
func FitRDA(resp, env *community.Matrix, constraints []string) (*RDA, error) {
	pair := &community.Paired{Community: resp, Env: env}
	if err := pair.VerifyAlignment(); err != nil {
		return nil, err
	}
	if len(constraints) == 0 {
		return nil, NoConstraintsError()
	}
	for _, name := range constraints {
		if _, ok := env.ColIndex(name); !ok {
			return nil, UnknownConstraintError(name)
		}
		if env.IsFactor(name) {
			return nil, FactorColumnError("rda", name)
		}
	}
	n := resp.Rows()
	if n < 2 {
		return nil, TooFewSitesError("rda", n)
	}

	y := resp.Dense()
	centerColumns(y)

	x := mat.NewDense(n, len(constraints), nil)
	for j, name := range constraints {
		col, err := env.Column(name)
		if err != nil {
			return nil, err
		}
		x.SetCol(j, col)
	}
	centerColumns(x)

	var b mat.Dense
	if err := b.Solve(x, y); err != nil {
		return nil, SolveError(err)
	}
	var fitted mat.Dense
	fitted.Mul(x, &b)

	total := inertia(y, n)
	constrained := inertia(&fitted, n)
	if total == 0 {
		return nil, NoVarianceError("rda")
	}

	fittedM, err := community.New(
		resp.RowLabels(), resp.ColLabels(), flatten(&fitted),
	)
	if err != nil {
		return nil, err
	}
	ord, err := FitPCA(fittedM)
	if err != nil {
		return nil, err
	}

	return &RDA{
		ord:           ord,
		constraints:   slices.Clone(constraints),
		constrained:   constrained,
		unconstrained: total - constrained,
		total:         total,
		n:             n,
	}, nil
}

// Ordination returns the PCA of the fitted values; its components are
// the canonical axes of the analysis.
func (r *RDA) Ordination() *PCA {
	return r.ord
}

// Constraints returns the environmental columns the model was fitted
// on.
func (r *RDA) Constraints() []string {
	return slices.Clone(r.constraints)
}

// ConstrainedInertia returns the variance the constraints explain.
func (r *RDA) ConstrainedInertia() float64 {
	return r.constrained
}

// UnconstrainedInertia returns the residual variance.
func (r *RDA) UnconstrainedInertia() float64 {
	return r.unconstrained
}

// TotalInertia returns the total variance of the centered response.
func (r *RDA) TotalInertia() float64 {
	return r.total
}

// Rank returns the number of constraint columns.
func (r *RDA) Rank() int {
	return len(r.constraints)
}

// SampleSize returns the number of sites the model was fitted on.
func (r *RDA) SampleSize() int {
	return r.n
}

// inertia is the summed column variance of a centered matrix, the
// squared Frobenius norm over n-1.
func inertia(d mat.Matrix, n int) float64 {
	norm := mat.Norm(d, 2)
	return norm * norm / float64(n-1)
}

// flatten serializes a dense matrix row-major for community.New.
func flatten(d *mat.Dense) []float64 {
	r, _ := d.Dims()
	var res []float64
	for i := range r {
		res = append(res, d.RawRowView(i)...)
	}
	return res
}
