// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/kardex/pkg/config"
	"github.com/spf13/viper"
)

const (
	// TestDatabaseName is the PostgreSQL database used for all integration
	// tests. Tests never run against a production database.
	TestDatabaseName = "kardex_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// PostgreSQL credentials come from KARDEX_DATABASE_* environment variables
// or defaults, the database name is always TestDatabaseName.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	v := viper.New()
	v.SetEnvPrefix("KARDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := config.New()
	var opts []config.Option
	if s := v.GetString("database.host"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if i := v.GetInt("database.port"); i > 0 {
		opts = append(opts, config.OptDatabasePort(i))
	}
	if s := v.GetString("database.user"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := v.GetString("database.password"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	if s := v.GetString("database.ssl_mode"); s != "" {
		opts = append(opts, config.OptDatabaseSSLMode(s))
	}
	opts = append(opts,
		config.OptDatabaseDriver("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	)
	cfg.Update(opts)

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// SetupTempHome creates a temporary home directory with the kardex
// config, data and log directories inside. It is removed when the test
// finishes.
func SetupTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	dirs := []string{
		config.ConfigDir(home),
		config.DataDir(home),
		config.LogDir(home),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", d, err)
		}
	}
	return home
}

// WriteTempFile writes content to a file in dir and returns its path.
//
// Usage:
//
//	path := iotesting.WriteTempFile(t, t.TempDir(), "roster.yaml", `
//	families:
//	  - label: Dupont
//	`)
func WriteTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
