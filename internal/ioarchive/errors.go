package ioarchive

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/vegdata/vegmat/pkg/errcode"
)

// OpenError is returned when the archive database cannot be opened.
func OpenError(path string, err error) error {
	msg := `Cannot open run archive <em>%s</em>

<em>How to fix:</em>
  1. Check the file: <em>ls -l %s</em>
  2. A corrupted archive can be deleted; a fresh one appears on the
     next run <em>(archived results are lost)</em>`
	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open archive %s: %w",
			fn.Name(), path, err),
	}
}

// SchemaError is returned when the runs table cannot be created.
func SchemaError(err error) error {
	msg := "Cannot prepare the run archive schema"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveSchemaError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot create runs table: %w",
			fn.Name(), err),
	}
}

// EncodeError is returned when a run's metrics or matrices cannot be
// serialized.
func EncodeError(runID string, err error) error {
	msg := "Cannot encode run <em>%s</em> for the archive"
	vars := []any{runID}
	return &gn.Error{
		Code: errcode.ArchiveEncodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot encode run %s: %w", runID, err),
	}
}

// SaveError is returned when a run row cannot be written.
func SaveError(runID string, err error) error {
	msg := "Cannot archive run <em>%s</em>"
	vars := []any{runID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveSaveError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot save run %s: %w",
			fn.Name(), runID, err),
	}
}

// ListError is returned when archived runs cannot be read back.
func ListError(err error) error {
	msg := "Cannot list archived runs"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveListError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot list runs: %w",
			fn.Name(), err),
	}
}
