package transform

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/vegdata/vegmat/pkg/errcode"
)

// UnknownTransformError creates an error for a transform name absent
// from the registry.
func UnknownTransformError(name string) error {
	return &gn.Error{
		Code: errcode.TransformUnknownError,
		Msg:  "Unknown transformation <em>%s</em>, choose one of %v",
		Vars: []any{name, Names},
		Err:  fmt.Errorf("unknown transformation %q", name),
	}
}

// NegativeValueError creates an error for an abundance transform
// applied to a matrix with negative cells.
func NegativeValueError(op, row, col string, v float64) error {
	return &gn.Error{
		Code: errcode.TransformNegativeValueError,
		Msg:  "Transformation <em>%s</em> needs non-negative data, cell [%s, %s] holds %g",
		Vars: []any{op, row, col, v},
		Err: fmt.Errorf(
			"%s: negative value %g at [%s, %s]", op, v, row, col,
		),
	}
}

// ZeroRowSumError creates an error for a row whose total is zero.
func ZeroRowSumError(op, row string) error {
	return &gn.Error{
		Code: errcode.TransformZeroDivisionError,
		Msg:  "Transformation <em>%s</em> cannot rescale row <em>%s</em>, its total is zero",
		Vars: []any{op, row},
		Err:  fmt.Errorf("%s: row %q sums to zero", op, row),
	}
}

// ZeroColumnMaxError creates an error for a column whose maximum is
// zero.
func ZeroColumnMaxError(op, col string) error {
	return &gn.Error{
		Code: errcode.TransformZeroDivisionError,
		Msg:  "Transformation <em>%s</em> cannot rescale column <em>%s</em>, its maximum is zero",
		Vars: []any{op, col},
		Err:  fmt.Errorf("%s: column %q maximum is zero", op, col),
	}
}

// ZeroRowNormError creates an error for a row with zero Euclidean
// norm.
func ZeroRowNormError(op, row string) error {
	return &gn.Error{
		Code: errcode.TransformZeroDivisionError,
		Msg:  "Transformation <em>%s</em> cannot rescale row <em>%s</em>, its norm is zero",
		Vars: []any{op, row},
		Err:  fmt.Errorf("%s: row %q norm is zero", op, row),
	}
}

// ZeroVarianceError creates an error for standardizing a constant
// column.
func ZeroVarianceError(op, col string) error {
	return &gn.Error{
		Code: errcode.TransformZeroVarianceError,
		Msg:  "Transformation <em>%s</em> cannot rescale column <em>%s</em>, it is constant",
		Vars: []any{op, col},
		Err:  fmt.Errorf("%s: column %q has zero variance", op, col),
	}
}

// HellingerError wraps the relative-abundance step of the Hellinger
// transform.
func HellingerError(err error) error {
	return &gn.Error{
		Code: errcode.TransformZeroDivisionError,
		Msg:  "Hellinger transformation failed on the relative-abundance step",
		Vars: nil,
		Err:  fmt.Errorf("hellinger: %w", err),
	}
}
