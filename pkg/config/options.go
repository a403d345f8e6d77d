package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptModelLineRegion sets the rest-frame half-width of fitting regions
// around emission lines.
func OptModelLineRegion(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Model Line Region", f) {
			c.Model.LineRegion = f
		}
	}
}

// OptOutputFormat sets the format of printed model summaries.
// Valid values: "text", "json", "csv".
func OptOutputFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Output.Format", s) {
			c.Output.Format = s
		}
	}
}

// OptStoreBackend sets the storage backend.
// Valid values: "none", "sqlite", "postgres".
func OptStoreBackend(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Store.Backend", s) {
			c.Store.Backend = s
		}
	}
}

// OptStorePath sets the SQLite file used by the sqlite backend.
func OptStorePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store Path", s) {
			c.Store.Path = s
		}
	}
}

// OptStoreHost sets the PostgreSQL server hostname or IP address.
func OptStoreHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store Host", s) {
			c.Store.Host = s
		}
	}
}

// OptStorePort sets the PostgreSQL server port number.
func OptStorePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Store Port", i) {
			c.Store.Port = i
		}
	}
}

// OptStoreUser sets the PostgreSQL database username.
func OptStoreUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store User", s) {
			c.Store.User = s
		}
	}
}

// OptStorePassword sets the PostgreSQL database password.
func OptStorePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store Password", s) {
			c.Store.Password = s
		}
	}
}

// OptStoreDatabase sets the PostgreSQL database name.
func OptStoreDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store Database", s) {
			c.Store.Database = s
		}
	}
}

// OptStoreSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptStoreSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Store.SSLMode", s) {
			c.Store.SSLMode = s
		}
	}
}

// OptStoreBatchSize sets the number of parameter rows per insert.
func OptStoreBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Store.BatchSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of spectra processed concurrently.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptMetricsFile sets the file for Prometheus text-format metrics.
// Runtime-only field - not in ToOptions().
func OptMetricsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Metrics File", s) {
			c.MetricsFile = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
