package iomatrix

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/vegdata/vegmat/pkg/errcode"
)

// WriteError is returned when an export file cannot be written.
func WriteError(path string, err error) error {
	msg := `Cannot write <em>%s</em>

<em>How to fix:</em>
  Check that the directory exists and is writable:
  <em>ls -ld $(dirname %s)</em>`
	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write %s: %w",
			fn.Name(), path, err),
	}
}

// ImportError is returned when an exported matrix cannot be read back.
func ImportError(path string, err error) error {
	msg := `Cannot read matrix file <em>%s</em>

The file must be a CSV exported by <em>vegmat matrix</em>: row labels
in the first column, descriptor names in the header.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read matrix %s: %w",
			fn.Name(), path, err),
	}
}
