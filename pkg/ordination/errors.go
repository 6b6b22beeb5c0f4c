package ordination

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/vegdata/vegmat/pkg/errcode"
)

// R2DomainError is returned when a model has too few sites for the
// adjustment: n - rank - 1 must stay positive.
type R2DomainError struct {
	error
	gnlib.MessageBase

	// N is the model's sample size.
	N int

	// Rank is the number of constraints the model spent.
	Rank int
}

// NewR2DomainError creates a domain error for the adjusted R²
// denominator.
func NewR2DomainError(n, rank int) error {
	userBase := gnlib.NewMessage(
		`<title>Too Few Sites For Adjusted R²</title>

<warning>The adjustment divides by n - rank - 1, which is not positive here.</warning>

<em>Sites (n):</em>      %d
<em>Constraints:</em>   %d

Drop constraints or add sites; with this many constraints the raw R²
is meaningless anyway.
`,
		[]any{n, rank},
	)

	return R2DomainError{
		error: fmt.Errorf(
			"adjusted r2 undefined: n=%d, rank=%d, n-rank-1=%d",
			n, rank, n-rank-1,
		),
		MessageBase: userBase,
		N:           n,
		Rank:        rank,
	}
}

// TooFewSitesError creates an error for an analysis on fewer than two
// sites.
func TooFewSitesError(op string, n int) error {
	return &gn.Error{
		Code: errcode.OrdinationTooFewSitesError,
		Msg:  "Analysis <em>%s</em> needs at least 2 sites, got %d",
		Vars: []any{op, n},
		Err:  fmt.Errorf("%s: too few sites: %d", op, n),
	}
}

// DecompositionError creates an error for a failed eigendecomposition.
func DecompositionError(op string) error {
	return &gn.Error{
		Code: errcode.OrdinationDecompositionError,
		Msg:  "Analysis <em>%s</em> could not decompose the matrix",
		Vars: []any{op},
		Err:  fmt.Errorf("%s: decomposition failed", op),
	}
}

// NoVarianceError creates an error for a matrix without variance,
// which has nothing to ordinate.
func NoVarianceError(op string) error {
	return &gn.Error{
		Code: errcode.OrdinationDecompositionError,
		Msg:  "Analysis <em>%s</em> got a matrix without variance",
		Vars: []any{op},
		Err:  fmt.Errorf("%s: matrix has zero variance", op),
	}
}

// FactorColumnError creates an error for a categorical column in a
// numeric analysis.
func FactorColumnError(op, col string) error {
	return &gn.Error{
		Code: errcode.OrdinationFactorConstraintError,
		Msg:  "Column <em>%s</em> is categorical, dummy-encode it before running %s",
		Vars: []any{col, op},
		Err:  fmt.Errorf("%s: factor column %q", op, col),
	}
}

// AxisRangeError creates an error for a component outside the fitted
// range, or a component requested twice.
func AxisRangeError(axis, components int) error {
	return &gn.Error{
		Code: errcode.OrdinationAxisRangeError,
		Msg:  "Cannot display axis <em>%d</em>, need two distinct axes within the %d fitted components",
		Vars: []any{axis, components},
		Err:  fmt.Errorf("axis %d not displayable among %d components", axis, components),
	}
}

// ScalingValueError creates an error for a scaling other than 1 or 2.
func ScalingValueError(v int) error {
	return &gn.Error{
		Code: errcode.OrdinationScalingError,
		Msg:  "Unknown scaling <em>%d</em>, use 1 (distance) or 2 (correlation)",
		Vars: []any{v},
		Err:  fmt.Errorf("unknown scaling %d", v),
	}
}

// DegenerateAxisError creates an error for standardizing scores on an
// axis with zero eigenvalue.
func DegenerateAxisError(axis int) error {
	return &gn.Error{
		Code: errcode.OrdinationScalingError,
		Msg:  "Axis <em>%d</em> has zero eigenvalue, a correlation biplot cannot standardize it",
		Vars: []any{axis},
		Err:  fmt.Errorf("axis %d degenerate under scaling 2", axis),
	}
}

// NoConstraintsError creates an error for a constrained analysis
// without constraints.
func NoConstraintsError() error {
	return &gn.Error{
		Code: errcode.OrdinationConstraintMissingError,
		Msg:  "A constrained analysis needs at least one constraint column",
		Vars: nil,
		Err:  fmt.Errorf("no constraints given"),
	}
}

// UnknownConstraintError creates an error for a constraint absent from
// the environmental matrix.
func UnknownConstraintError(name string) error {
	return &gn.Error{
		Code: errcode.OrdinationConstraintMissingError,
		Msg:  "Constraint <em>%s</em> is not an environmental column",
		Vars: []any{name},
		Err:  fmt.Errorf("unknown constraint %q", name),
	}
}

// SolveError wraps a least-squares failure, usually collinear
// constraints.
func SolveError(err error) error {
	return &gn.Error{
		Code: errcode.OrdinationSolveError,
		Msg:  "Least squares failed, constraints are probably collinear",
		Vars: nil,
		Err:  fmt.Errorf("least squares: %w", err),
	}
}
