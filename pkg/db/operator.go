package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/theskyentist/gelato/pkg/config"
)

// Operator defines the interface for basic PostgreSQL management
// operations. It provides connection lifecycle management and exposes the
// pgxpool.Pool so the results store can use CopyFrom for bulk inserts and
// GORM for schema migration.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.StoreConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// DropTables drops given tables if they exist.
	DropTables(ctx context.Context, tables ...string) error
}
