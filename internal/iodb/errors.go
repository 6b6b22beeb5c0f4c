package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/vegdata/vegmat/pkg/errcode"
)

// ConnectionError is returned when database connection fails.
type ConnectionError struct {
	error
	gnlib.MessageBase
}

// NewConnectionError creates a connection error with user-friendly message.
func NewConnectionError(host string, port int, database, user string, cause error) error {
	userBase := gnlib.NewMessage(
		`<title>Database Connection Failed</title>

<warning>Could not connect to PostgreSQL database.</warning>

<em>Possible causes:</em>
  • PostgreSQL is not running
  • Database configuration is incorrect
  • Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>

  3. Check your configuration file:
     <em>~/.config/vegmat/config.yaml</em>

  4. Review connection settings:
     Host: %s
     Port: %d
     Database: %s
     User: %s

Datasets read from files do not need a database at all; check
datasets.yaml if this dataset should have been a file.
`,
		[]any{
			host, port,
			host, user,
			host, port, database, user,
		},
	)

	return ConnectionError{
		error: fmt.Errorf(
			"failed to connect to %s:%d/%s: %w", host, port, database, cause,
		),
		MessageBase: userBase,
	}
}

// NotConnectedError is returned when operations run before Connect.
func NotConnectedError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Not connected to the database",
		Vars: nil,
		Err:  fmt.Errorf("from %s: operator used before Connect", fn.Name()),
	}
}

// TableExistsCheckError is returned when the table existence check
// itself fails.
func TableExistsCheckError(table string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Cannot check whether table <em>%s</em> exists",
		Vars: []any{table},
		Err: fmt.Errorf("from %s: table %s existence check: %w",
			fn.Name(), table, err),
	}
}
