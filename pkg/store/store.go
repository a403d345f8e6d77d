// Package store defines where built models are kept.
package store

import (
	"context"

	"github.com/theskyentist/gelato/pkg/schema"
)

// Store saves built models. Implementations must be safe for concurrent
// use by batch workers.
type Store interface {
	// Init creates or migrates the storage schema.
	Init(ctx context.Context) error

	// SaveRun records a run before its results are saved.
	SaveRun(ctx context.Context, run *schema.Run) error

	// Save stores the model of one spectrum.
	Save(ctx context.Context, res *schema.Result) error

	// Close releases resources of the store.
	Close() error
}
