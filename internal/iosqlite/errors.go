package iosqlite

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/errcode"
)

// ConnectionError is returned when the database file cannot be opened.
func ConnectionError(path string, err error) error {
	msg := `Cannot open SQLite database <em>%s</em>

<em>How to fix:</em>
  1. Check that the directory exists and is writable
  2. Set <em>database.path</em> in config.yaml or KARDEX_DATABASE_PATH`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), path, err),
	}
}

// NotConnectedError is returned when the store is used before Connect.
func NotConnectedError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database operation attempted without connection",
		Err:  fmt.Errorf("from %s: not connected to database", fn.Name()),
	}
}

// MigrateError is returned when tables or indexes cannot be created.
func MigrateError(table string, err error) error {
	msg := "Cannot create table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot migrate %s: %w", fn.Name(), table, err),
	}
}

// QueryError is returned when a select fails.
func QueryError(table string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot query %s: %w", fn.Name(), table, err),
	}
}

// ScanError is returned when a row cannot be decoded.
func ScanError(table string, err error) error {
	msg := "Cannot decode a row of <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBScanError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot scan %s: %w", fn.Name(), table, err),
	}
}

// OptimizeError is returned when a maintenance statement fails.
func OptimizeError(stmt string, err error) error {
	msg := "Cannot optimize database, <em>%s</em> failed"
	vars := []any{stmt}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBOptimizeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s failed: %w", fn.Name(), stmt, err),
	}
}
