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

// ToOptions converts the persistent part of the Config (what config.yaml
// and KARDEX_* variables can hold) to Options. HomeDir is runtime-only and
// is left out. Zero values are skipped, so applying the result to New()
// keeps defaults for them.
func (c *Config) ToOptions() []Option {
	var res []Option
	str := func(s string, opt func(string) Option) {
		if s != "" {
			res = append(res, opt(s))
		}
	}
	num := func(i int, opt func(int) Option) {
		if i > 0 {
			res = append(res, opt(i))
		}
	}

	db := c.Database
	str(db.Driver, OptDatabaseDriver)
	str(db.Path, OptDatabasePath)
	str(db.Host, OptDatabaseHost)
	num(db.Port, OptDatabasePort)
	str(db.User, OptDatabaseUser)
	str(db.Password, OptDatabasePassword)
	str(db.Database, OptDatabaseDatabase)
	str(db.SSLMode, OptDatabaseSSLMode)

	if len(c.Policy.LargeRooms) > 0 {
		res = append(res, OptPolicyLargeRooms(c.Policy.LargeRooms))
	}
	num(c.Policy.LargeRoomCapacity, OptPolicyLargeRoomCapacity)
	num(c.Policy.RoomCapacity, OptPolicyRoomCapacity)

	str(c.Log.Format, OptLogFormat)
	str(c.Log.Level, OptLogLevel)
	str(c.Log.Destination, OptLogDestination)
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

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.Driver": {"sqlite": s, "postgres": s},
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}

	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		lines = append(lines, fmt.Sprintf("  * %s", v))
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
