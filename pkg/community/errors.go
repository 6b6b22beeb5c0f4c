package community

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/vegdata/vegmat/pkg/errcode"
)

// AlignmentError is returned when community and environmental matrices
// disagree on row labels. Every downstream model depends on alignment,
// so callers must treat it as fatal.
type AlignmentError struct {
	error
	gnlib.MessageBase

	// Position is the first row index where the labels diverge. It is
	// -1 when the matrices differ in row count.
	Position int

	// CommunityLabel and EnvLabel are the labels found at Position.
	CommunityLabel string
	EnvLabel       string
}

// NewAlignmentError creates an alignment error for a label mismatch at
// one position.
func NewAlignmentError(pos int, commLabel, envLabel string) error {
	userBase := gnlib.NewMessage(
		`<title>Matrix Rows Are Misaligned</title>

<warning>Community and environmental matrices disagree on row order.</warning>

<em>First mismatch:</em>
  Position:      %d
  Community row: %s
  Environment row: %s

No joint analysis is safe until the matrices are rebuilt together.
`,
		[]any{pos + 1, commLabel, envLabel},
	)

	return AlignmentError{
		error: fmt.Errorf(
			"row alignment broken at position %d: community %q, environment %q",
			pos, commLabel, envLabel,
		),
		MessageBase:    userBase,
		Position:       pos,
		CommunityLabel: commLabel,
		EnvLabel:       envLabel,
	}
}

// NewAlignmentCountError creates an alignment error for matrices with
// different row counts.
func NewAlignmentCountError(commRows, envRows int) error {
	userBase := gnlib.NewMessage(
		`<title>Matrix Rows Are Misaligned</title>

<warning>Community and environmental matrices differ in size.</warning>

<em>Row counts:</em>
  Community:   %d
  Environment: %d

No joint analysis is safe until the matrices are rebuilt together.
`,
		[]any{commRows, envRows},
	)

	return AlignmentError{
		error: fmt.Errorf(
			"row alignment broken: community has %d rows, environment has %d",
			commRows, envRows,
		),
		MessageBase: userBase,
		Position:    -1,
	}
}

// CovariateMissingError is returned when a sampling event lacks a
// covariate value. Absent species legitimately default to zero cover;
// absent covariates never default.
type CovariateMissingError struct {
	error
	gnlib.MessageBase

	// Key is the sample key of the offending sampling event.
	Key string

	// Covariate is the name of the missing covariate.
	Covariate string
}

// NewCovariateMissingError creates an error for a missing covariate.
func NewCovariateMissingError(key, covariate string) error {
	userBase := gnlib.NewMessage(
		`<title>Missing Covariate Value</title>

<warning>A sampling event has no value for a site covariate.</warning>

<em>Sampling event:</em> %s
<em>Covariate:</em>      %s

Fix the source table; covariates are never silently defaulted.
`,
		[]any{key, covariate},
	)

	return CovariateMissingError{
		error: fmt.Errorf(
			"covariate %q has no value for sampling event %q", covariate, key,
		),
		MessageBase: userBase,
		Key:         key,
		Covariate:   covariate,
	}
}

// CovariateConflictError is returned when records of one sampling
// event disagree on a covariate that should be constant per event.
type CovariateConflictError struct {
	error
	gnlib.MessageBase

	// Key is the sample key of the offending sampling event.
	Key string

	// Covariate is the name of the conflicting covariate.
	Covariate string
}

// NewCovariateConflictError creates an error for a numeric covariate
// that varies within a sampling event.
func NewCovariateConflictError(key, covariate string, first, conflicting float64) error {
	userBase := gnlib.NewMessage(
		`<title>Covariate Is Not Constant</title>

<warning>Records of one sampling event disagree on a site covariate.</warning>

<em>Sampling event:</em> %s
<em>Covariate:</em>      %s
<em>First value:</em>    %g
<em>Other value:</em>    %g

Covariates are constant per sampling event; the source table is broken.
`,
		[]any{key, covariate, first, conflicting},
	)

	return CovariateConflictError{
		error: fmt.Errorf(
			"covariate %q conflicts for sampling event %q: %g vs %g",
			covariate, key, first, conflicting,
		),
		MessageBase: userBase,
		Key:         key,
		Covariate:   covariate,
	}
}

// NewFactorConflictError creates an error for a categorical covariate
// that varies within a sampling event.
func NewFactorConflictError(key, covariate, first, conflicting string) error {
	userBase := gnlib.NewMessage(
		`<title>Covariate Is Not Constant</title>

<warning>Records of one sampling event disagree on a site covariate.</warning>

<em>Sampling event:</em> %s
<em>Covariate:</em>      %s
<em>First value:</em>    %s
<em>Other value:</em>    %s

Covariates are constant per sampling event; the source table is broken.
`,
		[]any{key, covariate, first, conflicting},
	)

	return CovariateConflictError{
		error: fmt.Errorf(
			"covariate %q conflicts for sampling event %q: %q vs %q",
			covariate, key, first, conflicting,
		),
		MessageBase: userBase,
		Key:         key,
		Covariate:   covariate,
	}
}

// NoObservationsError creates an error for a build with no input left
// after filtering.
func NoObservationsError() error {
	return &gn.Error{
		Code: errcode.MatrixNoObservationsError,
		Msg:  "No observations left after filtering, nothing to build",
		Vars: nil,
		Err:  fmt.Errorf("no observations after filtering"),
	}
}

// EmptyMatrixError creates an error for a matrix without rows or
// columns.
func EmptyMatrixError(rows, cols int) error {
	return &gn.Error{
		Code: errcode.MatrixShapeError,
		Msg:  "Matrix needs rows and columns, got <em>%d x %d</em>",
		Vars: []any{rows, cols},
		Err:  fmt.Errorf("empty matrix shape %dx%d", rows, cols),
	}
}

// ValuesShapeError creates an error for a value slice that does not
// cover the matrix.
func ValuesShapeError(rows, cols, values int) error {
	return &gn.Error{
		Code: errcode.MatrixShapeError,
		Msg:  "Matrix <em>%d x %d</em> needs %d values, got %d",
		Vars: []any{rows, cols, rows * cols, values},
		Err: fmt.Errorf(
			"%dx%d matrix needs %d values, got %d",
			rows, cols, rows*cols, values,
		),
	}
}

// DuplicateLabelError creates an error for a repeated axis label.
func DuplicateLabelError(axis, label string) error {
	return &gn.Error{
		Code: errcode.MatrixDuplicateLabelError,
		Msg:  "Duplicate %s label <em>%s</em>",
		Vars: []any{axis, label},
		Err:  fmt.Errorf("duplicate %s label %q", axis, label),
	}
}

// UnknownLabelError creates an error for a label absent from an axis.
func UnknownLabelError(axis, label string) error {
	return &gn.Error{
		Code: errcode.MatrixUnknownLabelError,
		Msg:  "Unknown %s label <em>%s</em>",
		Vars: []any{axis, label},
		Err:  fmt.Errorf("unknown %s label %q", axis, label),
	}
}

// NotFactorError creates an error for reading levels of a numeric
// column.
func NotFactorError(col string) error {
	return &gn.Error{
		Code: errcode.MatrixFactorError,
		Msg:  "Column <em>%s</em> is not categorical",
		Vars: []any{col},
		Err:  fmt.Errorf("column %q is not a factor", col),
	}
}

// LevelRangeError creates an error for a factor cell outside its level
// table.
func LevelRangeError(col string, idx, levels int) error {
	return &gn.Error{
		Code: errcode.MatrixFactorError,
		Msg:  "Column <em>%s</em> holds level index %d, level table has %d entries",
		Vars: []any{col, idx, levels},
		Err: fmt.Errorf(
			"factor column %q: level index %d out of %d", col, idx, levels,
		),
	}
}
