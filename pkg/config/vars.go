package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "kardex"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/kardex by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for the SQLite database.
// Returns ~/.local/share/kardex by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/kardex/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/kardex/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DatabaseFilePath returns the default SQLite database file.
// Returns ~/.local/share/kardex/kardex.db by default.
func DatabaseFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), AppName+".db")
}
