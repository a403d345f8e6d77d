// Package config provides configuration management for gelato.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Model: line_region
//   - Output: format
//   - Store: backend, path, host, port, user, password, database,
//     ssl_mode, batch_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - MetricsFile
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GELATO_ prefix with underscores for nesting:
//
//	GELATO_MODEL_LINE_REGION=50
//	GELATO_STORE_BACKEND=sqlite
//	GELATO_LOG_LEVEL=info
//	GELATO_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gelato configuration.
type Config struct {
	// Model contains settings used while constructing spectral models.
	Model ModelConfig `mapstructure:"model" yaml:"model"`

	// Output determines how built models are reported to the user.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Store contains settings of the results storage.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of spectra processed concurrently in
	// batch mode. Default value is set according to the number of
	// available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// MetricsFile is a path where batch metrics are written in
	// Prometheus text format. Empty means metrics are not exported.
	MetricsFile string

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// ModelConfig contains model construction settings.
type ModelConfig struct {
	// LineRegion is the rest-frame half-width (in Angstrom) of the
	// fitting region placed around every emission line. Overlapping
	// regions are merged.
	LineRegion float64 `mapstructure:"line_region" yaml:"line_region"`
}

// OutputConfig contains settings for printing model summaries.
type OutputConfig struct {
	// Format can be 'text', 'json' or 'csv'.
	Format string `mapstructure:"format" yaml:"format"`
}

// StoreConfig contains settings of the storage for built models.
type StoreConfig struct {
	// Backend is one of 'none', 'sqlite', 'postgres'.
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite file. Empty means a file in the cache directory.
	Path string `mapstructure:"path" yaml:"path"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of parameter rows written per insert.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Model: ModelConfig{
			LineRegion: 50,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Store: StoreConfig{
			Backend:   "sqlite",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "gelato",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
