package iosurvey

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/vegdata/vegmat/pkg/errcode"
)

// OpenFileError is returned when a survey file cannot be opened.
func OpenFileError(path string, err error) error {
	msg := `Cannot open survey file <em>%s</em>

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Check the dataset's path in
     <em>~/.config/vegmat/datasets.yaml</em>`
	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SurveyOpenFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open survey file: %w",
			fn.Name(), err),
	}
}

// HeaderError is returned when the header row cannot be read.
func HeaderError(path string, err error) error {
	msg := "Cannot read the header row of <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SurveyHeaderError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read header: %w",
			fn.Name(), err),
	}
}

// ColumnMissingError is returned when a required observation column
// is not in the source. The source is a file path or a table name.
func ColumnMissingError(source, column string) error {
	msg := `Survey source <em>%s</em> has no <em>%s</em> column

Plot, species and cover columns are required.

<em>How to fix:</em>
  Map the column under <em>columns:</em> for this dataset in
  <em>~/.config/vegmat/datasets.yaml</em>`
	vars := []any{source, column}
	return &gn.Error{
		Code: errcode.SurveyColumnMissingError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("survey source %s: required column %q missing",
			source, column),
	}
}

// FieldParseError is returned for structural damage in a delimited
// file, a row whose field count disagrees with the header.
func FieldParseError(path string, row int, err error) error {
	msg := "Malformed row <em>%d</em> in <em>%s</em>"
	vars := []any{row, path}
	return &gn.Error{
		Code: errcode.SurveyFieldParseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("survey file %s row %d: %w",
			path, row, err),
	}
}

// EmptyError is returned when a source yields no usable observations.
func EmptyError(source string) error {
	msg := "No usable observations in <em>%s</em>"
	vars := []any{source}
	return &gn.Error{
		Code: errcode.SurveyEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("survey source %s: no usable observations", source),
	}
}

// NotConnectedError is returned when the table reader runs before the
// database operator is connected.
func NotConnectedError(table string) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Not connected to the database that holds table <em>%s</em>",
		Vars: []any{table},
		Err: fmt.Errorf("from %s: table reader used before Connect",
			fn.Name()),
	}
}

// TableNotFoundError is returned when the configured survey table
// does not exist in the database.
func TableNotFoundError(table string) error {
	msg := `Survey table <em>%s</em> does not exist

<em>How to fix:</em>
  1. List tables: <em>psql -c "\dt"</em>
  2. Check the dataset's table name in
     <em>~/.config/vegmat/datasets.yaml</em>`
	vars := []any{table}
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("survey table %s does not exist", table),
	}
}

// QueryError is returned when reading the survey table fails.
func QueryError(table string, err error) error {
	msg := "Cannot read survey table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: survey table %s: %w",
			fn.Name(), table, err),
	}
}

// ScanRowError is returned when a fetched row cannot be decoded.
func ScanRowError(table string, err error) error {
	msg := "Cannot decode a row of survey table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBScanRowError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: survey table %s scan: %w",
			fn.Name(), table, err),
	}
}
