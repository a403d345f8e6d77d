package config

import (
	"path/filepath"
)

var (
	// MinParamsVersion determines the oldest parameter-file version which
	// is still compatible with gelato. Higher versions within the same
	// major release are all supported.
	MinParamsVersion = "v0.2.0"
	// AppName is used in generating file system paths.
	AppName = "gelato"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gelato by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gelato by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gelato/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gelato/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// ParamsFilePath returns the full path to the example emission-line
// parameter file. Returns ~/.config/gelato/params.yaml by default.
func ParamsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "params.yaml")
}

// StoreFilePath returns the default SQLite results file.
// Returns ~/.cache/gelato/gelato.sqlite by default.
func StoreFilePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), AppName+".sqlite")
}
