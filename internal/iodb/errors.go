package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/theskyentist/gelato/pkg/errcode"
)

// ConnectionError is returned when database connection fails.
func ConnectionError(host string, port int, database, user string, err error) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Store configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running: <em>pg_isready -h %s -p %d</em>
  2. Check your configuration file: <em>~/.config/gelato/config.yaml</em>
  3. Review connection settings:
     Host: %s
     Port: %d
     Database: %s
     User: %s`
	vars := []any{host, port, host, port, database, user}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s:%d/%s: %w",
			fn.Name(), host, port, database, err),
	}
}

// NotConnectedError is returned when operations need a connection that
// was not established.
func NotConnectedError() error {
	msg := "Database is not connected"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: database is not connected", fn.Name()),
	}
}

// TableError is returned when a query about a table fails.
func TableError(table string, err error) error {
	msg := "Cannot access table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreSchemaError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: table %s: %w",
			fn.Name(), table, err),
	}
}
