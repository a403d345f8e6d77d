// Package iostore implements store.Store for SQLite and PostgreSQL.
// This is an impure I/O package.
package iostore

import (
	"context"
	"strings"

	"github.com/theskyentist/gelato/pkg/config"
	"github.com/theskyentist/gelato/pkg/schema"
	"github.com/theskyentist/gelato/pkg/store"
)

// New creates a store for the configured backend. The store is not
// initialized, call Init before saving.
func New(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "none":
		return discard{}, nil
	case "sqlite":
		path := cfg.Store.Path
		if path == "" {
			path = config.StoreFilePath(cfg.HomeDir)
		}
		return NewSQLite(path)
	case "postgres":
		return NewPostgres(cfg.Store), nil
	default:
		return nil, BackendError(cfg.Store.Backend)
	}
}

// discard drops all results.
type discard struct{}

func (discard) Init(context.Context) error { return nil }
func (discard) SaveRun(context.Context, *schema.Run) error { return nil }
func (discard) Save(context.Context, *schema.Result) error { return nil }
func (discard) Close() error { return nil }

// insertSQL creates an INSERT statement with placeholders produced by ph.
func insertSQL(table string, columns []string, ph func(int) string) string {
	vals := make([]string, len(columns))
	for i := range columns {
		vals[i] = ph(i + 1)
	}
	return "INSERT INTO " + table +
		" (" + strings.Join(columns, ", ") + ") VALUES (" +
		strings.Join(vals, ", ") + ")"
}
