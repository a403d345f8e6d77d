package iobatch

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/theskyentist/gelato/pkg/errcode"
)

// ListError creates an error for unreadable or malformed list files.
func ListError(path string, err error) error {
	msg := `Cannot read list of spectra <em>%s</em>

Every line must contain a spectrum path and its redshift,
for example:
  spectra/obj1.txt 0.0512`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.BatchListError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read list %s: %w", path, err),
	}
}

// CancelledError creates an error for when the batch is cancelled.
func CancelledError(err error) error {
	msg := "Batch was cancelled"

	return &gn.Error{
		Code: errcode.BatchCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("batch cancelled: %w", err),
	}
}

// AllSpectraFailedError creates an error for when no model was built.
func AllSpectraFailedError(count int) error {
	msg := `Failed number of spectra: <em>%d</em>`
	vars := []any{count}

	plural := "a"
	if count == 1 {
		plural = "um"
	}

	return &gn.Error{
		Code: errcode.BatchAllSpectraFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d spectr%s failed to process", count, plural),
	}
}
