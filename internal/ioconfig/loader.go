// Package ioconfig loads gelato configuration from config.yaml and
// GELATO_* environment variables.
// This is an impure package that handles file system operations.
package ioconfig

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/theskyentist/gelato/internal/iofs"
	"github.com/theskyentist/gelato/pkg/config"
)

// EnvPrefix is the prefix of environment variables that override
// config.yaml values.
const EnvPrefix = "GELATO"

// Load reads configuration file and environment variables and returns
// options that can be applied to a default Config. Fields that are not set
// do not produce options, so defaults stay in place.
func Load(path string) ([]config.Option, error) {
	v := viper.New()
	v.SetConfigFile(path)

	initEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	var res config.Config
	if err := v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	return res.ToOptions(), nil
}

// initEnvVars binds environment variables explicitly, so it is clear which
// of them are allowed. They match fields of config.ToOptions().
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Model configuration
	_ = v.BindEnv("model.line_region", EnvPrefix+"_MODEL_LINE_REGION")

	// Output configuration
	_ = v.BindEnv("output.format", EnvPrefix+"_OUTPUT_FORMAT")

	// Store configuration
	_ = v.BindEnv("store.backend", EnvPrefix+"_STORE_BACKEND")
	_ = v.BindEnv("store.path", EnvPrefix+"_STORE_PATH")
	_ = v.BindEnv("store.host", EnvPrefix+"_STORE_HOST")
	_ = v.BindEnv("store.port", EnvPrefix+"_STORE_PORT")
	_ = v.BindEnv("store.user", EnvPrefix+"_STORE_USER")
	_ = v.BindEnv("store.password", EnvPrefix+"_STORE_PASSWORD")
	_ = v.BindEnv("store.database", EnvPrefix+"_STORE_DATABASE")
	_ = v.BindEnv("store.ssl_mode", EnvPrefix+"_STORE_SSL_MODE")
	_ = v.BindEnv("store.batch_size", EnvPrefix+"_STORE_BATCH_SIZE")

	// Log configuration
	_ = v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL")
	_ = v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT")
	_ = v.BindEnv("log.destination", EnvPrefix+"_LOG_DESTINATION")

	// General configuration
	_ = v.BindEnv("jobs_number", EnvPrefix+"_JOBS_NUMBER")

	v.AutomaticEnv()
}
