// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"strconv"
	"testing"

	"github.com/theskyentist/gelato/internal/iofs"
	"github.com/theskyentist/gelato/pkg/config"
)

// TestDatabaseName is the database name used for all integration tests.
// Tests never run against a production database.
const TestDatabaseName = "gelato_test"

// StoreConfig returns PostgreSQL settings for integration tests.
// Credentials can be changed with GELATO_STORE_* variables, the database
// name is always TestDatabaseName.
func StoreConfig() *config.StoreConfig {
	res := config.New().Store
	res.Backend = "postgres"
	if v := os.Getenv("GELATO_STORE_HOST"); v != "" {
		res.Host = v
	}
	if v, err := strconv.Atoi(os.Getenv("GELATO_STORE_PORT")); err == nil {
		res.Port = v
	}
	if v := os.Getenv("GELATO_STORE_USER"); v != "" {
		res.User = v
	}
	if v := os.Getenv("GELATO_STORE_PASSWORD"); v != "" {
		res.Password = v
	}
	res.Database = TestDatabaseName
	return &res
}

// TempHome creates a temporary home directory with default config and
// parameter files. The directory is removed when the test finishes.
func TempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	if err := iofs.EnsureDirs(home); err != nil {
		t.Fatalf("Failed to create dirs: %v", err)
	}
	if err := iofs.EnsureConfigFile(home); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	if err := iofs.EnsureParamsFile(home); err != nil {
		t.Fatalf("Failed to create params file: %v", err)
	}
	return home
}
