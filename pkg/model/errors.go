package model

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/theskyentist/gelato/pkg/errcode"
)

// IsConfigurationError returns true if the error comes from a mismatch
// between the hierarchy and the model under construction.
func IsConfigurationError(err error) bool {
	return hasCode(err, errcode.ModelConfigError)
}

// IsFactoryError returns true if a component could not be created.
func IsFactoryError(err error) bool {
	return hasCode(err, errcode.ModelFactoryError)
}

func hasCode(err error, code gn.ErrorCode) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code == code
	}
	return false
}

// MissingParamError is returned when the hierarchy refers to a parameter
// the model does not declare.
func MissingParamError(name string) error {
	msg := `Parameter <em>%s</em> does not exist in the model

<em>Possible causes:</em>
  - The emission groups differ from the ones used to build the model
  - The component of the species does not declare this parameter`
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ModelConfigError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: parameter %s is not found",
			fn.Name(), name),
	}
}

// FluxReferenceError is returned when a flux tie cannot be scaled by the
// reference line of the species.
func FluxReferenceError(species string, wavelength float64) error {
	msg := "Species <em>%s</em> has no usable flux reference for line %g"
	vars := []any{species, wavelength}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ModelConfigError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: flux reference of %s has zero ratio",
			fn.Name(), species),
	}
}

// SpectrumContextError is returned when the spectrum lacks data needed to
// create components.
func SpectrumContextError(field string) error {
	msg := "Spectrum is missing <em>%s</em>"
	vars := []any{field}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ModelConfigError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: spectrum context has no %s",
			fn.Name(), field),
	}
}

// EmptyModelError is returned when there is nothing to build a model from.
func EmptyModelError(what string) error {
	msg := "Cannot build a model without <em>%s</em>"
	vars := []any{what}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ModelConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no %s", fn.Name(), what),
	}
}

// DuplicateParamError is returned when two slots get the same name.
func DuplicateParamError(name string) error {
	msg := "Parameter <em>%s</em> is defined twice"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ModelConfigError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: duplicate parameter %s",
			fn.Name(), name),
	}
}

// InvalidTieError is returned when a tie points to itself, to a later
// parameter or outside of the parameter vector.
func InvalidTieError(name string, source int) error {
	msg := "Parameter <em>%s</em> cannot be tied to index %d"
	vars := []any{name, source}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ModelConfigError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid tie of %s to %d",
			fn.Name(), name, source),
	}
}

// ParamCountError is returned when a parameter vector or a name list does
// not match the model size.
func ParamCountError(want, got int) error {
	msg := "Model has %d parameters, got %d"
	vars := []any{want, got}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ModelConfigError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: want %d parameters, got %d",
			fn.Name(), want, got),
	}
}

// UnknownComponentError is returned for negative species flags that do
// not select any additional component.
func UnknownComponentError(flag int, wavelength float64) error {
	msg := `Unknown additional component flag <em>%d</em> for line %g

<em>Known flags:</em>
  -1 broad line
  -2 outflow
  -3 Lorentzian profile`
	vars := []any{flag, wavelength}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ModelFactoryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unknown component flag %d",
			fn.Name(), flag),
	}
}
