// Package config provides configuration management for kardex.
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
//   - Database: driver, path, host, port, user, password, database, ssl_mode
//   - Policy: large_rooms, large_room_capacity, room_capacity
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use KARDEX_ prefix with underscores for nesting:
//
//	KARDEX_DATABASE_DRIVER=postgres
//	KARDEX_DATABASE_HOST=localhost
//	KARDEX_POLICY_ROOM_CAPACITY=3
//	KARDEX_LOG_LEVEL=info
package config

import (
	"github.com/gnames/kardex/pkg/dashboard"
)

// Config represents the complete kardex configuration.
type Config struct {
	// Database contains storage connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Policy describes room capacities used by occupancy alerts.
	Policy PolicyConfig `mapstructure:"policy" yaml:"policy"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains storage parameters. SQLite uses Path only,
// PostgreSQL uses the network fields.
type DatabaseConfig struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the SQLite database file. Empty means the default file
	// in the data directory.
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
}

// PolicyConfig is the room layout of the shelter.
type PolicyConfig struct {
	// LargeRooms are room identifiers with LargeRoomCapacity.
	LargeRooms []string `mapstructure:"large_rooms" yaml:"large_rooms"`

	// LargeRoomCapacity is the number of persons a large room holds.
	LargeRoomCapacity int `mapstructure:"large_room_capacity" yaml:"large_room_capacity"`

	// RoomCapacity is the number of persons any other room holds.
	RoomCapacity int `mapstructure:"room_capacity" yaml:"room_capacity"`
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
		Database: DatabaseConfig{
			Driver:   "sqlite",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "kardex",
			SSLMode:  "disable",
		},
		Policy: PolicyConfig{
			LargeRooms:        append([]string(nil), dashboard.DefaultLargeRooms...),
			LargeRoomCapacity: dashboard.DefaultLargeRoomCapacity,
			RoomCapacity:      dashboard.DefaultRoomCapacity,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// CapacityPolicy builds a fresh read-only policy from the configuration,
// so later config changes never leak into a running computation.
func (c *Config) CapacityPolicy() dashboard.CapacityPolicy {
	return dashboard.NewCapacityPolicy(
		c.Policy.LargeRooms,
		c.Policy.LargeRoomCapacity,
		c.Policy.RoomCapacity,
	)
}

// SQLitePath returns the SQLite file, falling back to the data directory.
func (c *Config) SQLitePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return DatabaseFilePath(c.HomeDir)
}
