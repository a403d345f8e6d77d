package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/theskyentist/gelato/pkg/errcode"
)

// BackendError is returned for unknown store backends.
func BackendError(backend string) error {
	msg := `Unknown store backend <em>%s</em>

<em>Supported backends:</em> none, sqlite, postgres`
	vars := []any{backend}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreBackendError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown backend %s", fn.Name(), backend),
	}
}

// OpenError is returned when the SQLite file cannot be opened.
func OpenError(path string, err error) error {
	msg := "Cannot open results file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), path, err),
	}
}

// SchemaError is returned when tables cannot be created or migrated.
func SchemaError(err error) error {
	msg := "Cannot create tables for results"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreSchemaError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: schema: %w", fn.Name(), err),
	}
}

// SaveError is returned when records cannot be written.
func SaveError(what string, err error) error {
	msg := "Cannot save <em>%s</em>"
	vars := []any{what}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreSaveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot save %s: %w", fn.Name(), what, err),
	}
}
