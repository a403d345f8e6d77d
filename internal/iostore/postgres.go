package iostore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/theskyentist/gelato/internal/iodb"
	"github.com/theskyentist/gelato/pkg/config"
	"github.com/theskyentist/gelato/pkg/db"
	"github.com/theskyentist/gelato/pkg/schema"
	"github.com/theskyentist/gelato/pkg/store"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type pgStore struct {
	cfg      config.StoreConfig
	operator db.Operator
}

// NewPostgres creates a PostgreSQL store. Connection is established by
// Init.
func NewPostgres(cfg config.StoreConfig) store.Store {
	return &pgStore{cfg: cfg, operator: iodb.NewPgxOperator()}
}

// Init connects to the database and migrates the schema with GORM.
func (s *pgStore) Init(ctx context.Context) error {
	if s.operator.Pool() == nil {
		if err := s.operator.Connect(ctx, &s.cfg); err != nil {
			return err
		}
	}

	sqlDB := stdlib.OpenDBFromPool(s.operator.Pool())
	defer sqlDB.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return SchemaError(err)
	}

	if err = schema.Migrate(gormDB); err != nil {
		return SchemaError(err)
	}
	slog.Info("Results schema is ready", "database", s.cfg.Database)
	return nil
}

// SaveRun implements store.Store.
func (s *pgStore) SaveRun(ctx context.Context, run *schema.Run) error {
	pool := s.operator.Pool()
	if pool == nil {
		return iodb.NotConnectedError()
	}
	q := insertSQL(run.TableName(), schema.Columns(run), pgPlaceholder)
	if _, err := pool.Exec(ctx, q, run.Values()...); err != nil {
		return SaveError("run "+run.ID, err)
	}
	return nil
}

// Save writes the spectrum row and copies its parameters in batches
// within one transaction.
func (s *pgStore) Save(ctx context.Context, res *schema.Result) error {
	pool := s.operator.Pool()
	if pool == nil {
		return iodb.NotConnectedError()
	}

	spec := res.Spectrum
	tx, err := pool.Begin(ctx)
	if err != nil {
		return SaveError(spec.Path, err)
	}
	defer tx.Rollback(ctx)

	q := insertSQL(spec.TableName(), schema.Columns(spec), pgPlaceholder)
	if _, err = tx.Exec(ctx, q, spec.Values()...); err != nil {
		return SaveError(spec.Path, err)
	}

	var p schema.ParameterRecord
	columns := schema.Columns(p)
	batchSize := max(s.cfg.BatchSize, 1)
	for i := 0; i < len(res.Parameters); i += batchSize {
		end := min(i+batchSize, len(res.Parameters))
		batch := res.Parameters[i:end]

		rows := make([][]any, len(batch))
		for j, v := range batch {
			rows[j] = v.Values()
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{p.TableName()},
			columns,
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return SaveError(spec.Path, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return SaveError(spec.Path, err)
	}
	return nil
}

// Close implements store.Store.
func (s *pgStore) Close() error {
	return s.operator.Close()
}

func pgPlaceholder(i int) string {
	return fmt.Sprintf("$%d", i)
}
