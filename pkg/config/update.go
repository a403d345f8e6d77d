package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, MetricsFile).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	if f := c.Model.LineRegion; f > 0 {
		res = append(res, OptModelLineRegion(f))
	}

	s = c.Output.Format
	if s != "" {
		res = append(res, OptOutputFormat(s))
	}

	s = c.Store.Backend
	if s != "" {
		res = append(res, OptStoreBackend(s))
	}
	s = c.Store.Path
	if s != "" {
		res = append(res, OptStorePath(s))
	}
	s = c.Store.Host
	if s != "" {
		res = append(res, OptStoreHost(s))
	}
	i = c.Store.Port
	if i > 0 {
		res = append(res, OptStorePort(i))
	}
	s = c.Store.User
	if s != "" {
		res = append(res, OptStoreUser(s))
	}
	s = c.Store.Password
	if s != "" {
		res = append(res, OptStorePassword(s))
	}
	s = c.Store.Database
	if s != "" {
		res = append(res, OptStoreDatabase(s))
	}
	s = c.Store.SSLMode
	if s != "" {
		res = append(res, OptStoreSSLMode(s))
	}
	i = c.Store.BatchSize
	if i > 0 {
		res = append(res, OptStoreBatchSize(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidFloat(name string, f float64) bool {
	res := f > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %g", name, f)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Output.Format": {"text": s, "json": s, "csv": s},
		"Store.Backend": {"none": s, "sqlite": s, "postgres": s},
		"Store.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
