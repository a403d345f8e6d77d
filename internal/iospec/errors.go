package iospec

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/theskyentist/gelato/pkg/errcode"
)

// SpectrumReadError is returned when a spectrum file cannot be read or
// parsed.
func SpectrumReadError(path string, err error) error {
	msg := `Cannot read spectrum <em>%s</em>

<em>Expected format:</em>
  wavelength flux sigma
  one row per pixel, '#' starts a comment`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SpectrumReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read spectrum %s: %w",
			fn.Name(), path, err),
	}
}

// SpectrumInvalidError is returned when spectrum data cannot be used for
// model construction.
func SpectrumInvalidError(path string, err error) error {
	msg := "Spectrum <em>%s</em> cannot be used: %s"
	vars := []any{path, err.Error()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SpectrumInvalidError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid spectrum %s: %w",
			fn.Name(), path, err),
	}
}
