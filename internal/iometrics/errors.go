package iometrics

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/theskyentist/gelato/pkg/errcode"
)

// WriteError is returned when metrics cannot be exported.
func WriteError(path string, err error) error {
	msg := "Cannot write metrics to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MetricsWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}
