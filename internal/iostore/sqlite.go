package iostore

import (
	"context"
	"database/sql"
	"sync"

	"github.com/theskyentist/gelato/pkg/schema"
	"github.com/theskyentist/gelato/pkg/store"
	_ "modernc.org/sqlite"
)

type sqliteStore struct {
	path string
	db   *sql.DB
	// SQLite allows one writer at a time.
	mu sync.Mutex
}

// NewSQLite opens or creates the SQLite results file.
func NewSQLite(path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}
	return &sqliteStore{path: path, db: db}, nil
}

// Init creates tables and indices from ddl tags of the models.
func (s *sqliteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range schema.AllModels() {
		stmts := append([]string{m.TableDDL()}, m.IndexDDL()...)
		for _, q := range stmts {
			if _, err := s.db.ExecContext(ctx, q); err != nil {
				return SchemaError(err)
			}
		}
	}
	return nil
}

// SaveRun implements store.Store.
func (s *sqliteStore) SaveRun(ctx context.Context, run *schema.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := insertSQL(run.TableName(), schema.Columns(run), placeholder)
	if _, err := s.db.ExecContext(ctx, q, run.Values()...); err != nil {
		return SaveError("run "+run.ID, err)
	}
	return nil
}

// Save writes the spectrum and its parameters in one transaction.
func (s *sqliteStore) Save(ctx context.Context, res *schema.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	spec := res.Spectrum
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveError(spec.Path, err)
	}
	defer tx.Rollback()

	q := insertSQL(spec.TableName(), schema.Columns(spec), placeholder)
	if _, err = tx.ExecContext(ctx, q, spec.Values()...); err != nil {
		return SaveError(spec.Path, err)
	}

	var p schema.ParameterRecord
	stmt, err := tx.PrepareContext(
		ctx, insertSQL(p.TableName(), schema.Columns(p), placeholder),
	)
	if err != nil {
		return SaveError(spec.Path, err)
	}
	defer stmt.Close()

	for _, v := range res.Parameters {
		if _, err = stmt.ExecContext(ctx, v.Values()...); err != nil {
			return SaveError(v.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return SaveError(spec.Path, err)
	}
	return nil
}

// Close implements store.Store.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func placeholder(int) string {
	return "?"
}
