// Package iofs creates the kardex directories and the default config file.
package iofs

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"

	"github.com/gnames/kardex/pkg/config"
)

// ConfigYAML is the template written to config.yaml on the first run.
//
//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, data and log directories under homeDir.
// Existing directories are left as they are.
func EnsureDirs(homeDir string) error {
	for _, dir := range []string{
		config.ConfigDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return CreateDirError(dir, err)
		}
	}
	return nil
}

// EnsureConfigFile writes the embedded config.yaml unless a config file
// already exists. A user's file is never overwritten.
func EnsureConfigFile(homeDir string) error {
	path := config.ConfigFilePath(homeDir)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return WriteConfigError(path, err)
	}

	if _, err = f.WriteString(ConfigYAML); err != nil {
		f.Close()
		return WriteConfigError(path, err)
	}
	if err = f.Close(); err != nil {
		return WriteConfigError(path, err)
	}
	return nil
}
