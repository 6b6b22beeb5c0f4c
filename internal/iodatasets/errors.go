package iodatasets

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/vegdata/vegmat/pkg/errcode"
)

// DatasetsConfigError creates an error for when datasets.yaml
// cannot be loaded.
func DatasetsConfigError(path string, err error) error {
	msg := `Cannot load dataset descriptors

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - A dataset points to a missing file

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Delete the file and run any command; a commented
     template is written in its place`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.SurveyDatasetsConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load datasets config: %w", err),
	}
}
