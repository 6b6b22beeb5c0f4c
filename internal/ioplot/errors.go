package ioplot

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/vegdata/vegmat/pkg/errcode"
)

// RenderError is returned when a plot cannot be drawn or saved.
func RenderError(path string, err error) error {
	msg := `Cannot render plot <em>%s</em>

<em>How to fix:</em>
  Check that the directory exists and is writable:
  <em>ls -ld $(dirname %s)</em>`
	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportRenderError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot render %s: %w",
			fn.Name(), path, err),
	}
}
