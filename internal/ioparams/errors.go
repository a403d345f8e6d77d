package ioparams

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/theskyentist/gelato/pkg/errcode"
)

// ParamsReadError is returned when the parameter file cannot be read.
func ParamsReadError(path string, err error) error {
	msg := `Cannot read parameter file <em>%s</em>

<em>Possible causes:</em>
  - File does not exist
  - Permission denied

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Start from the example: <em>~/.config/gelato/params.yaml</em>`
	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParamsReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read parameter file: %w",
			fn.Name(), err),
	}
}

// ParamsDecodeError is returned when the parameter file is not valid
// YAML or HCL, or has an unknown extension.
func ParamsDecodeError(path string, err error) error {
	msg := "Cannot decode parameter file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParamsDecodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot decode %s: %w",
			fn.Name(), path, err),
	}
}

// ParamsVersionError is returned when the parameter file version is not
// supported.
func ParamsVersionError(path, version, minVersion string) error {
	msg := `Parameter file <em>%s</em> has unsupported version <em>%s</em>

<em>Supported:</em> %s or newer within the same major release`
	vars := []any{path, version, minVersion}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParamsVersionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: version %s is not compatible with %s",
			fn.Name(), version, minVersion),
	}
}

// ParamsInvalidError is returned when the hierarchy fails validation.
func ParamsInvalidError(path string, err error) error {
	msg := "Parameter file <em>%s</em> is invalid: %s"
	vars := []any{path, err.Error()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParamsInvalidError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid parameter file: %w",
			fn.Name(), err),
	}
}
