package iopg

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/errcode"
)

// ConnectionError is returned when the PostgreSQL pool cannot be created.
func ConnectionError(host string, port int, database, user string, err error) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify database <em>%s</em> exists and user <em>%s</em> can access it
  3. Check ~/.config/kardex/config.yaml or KARDEX_DATABASE_* variables`
	vars := []any{host, port, database, user}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s:%d/%s: %w",
			fn.Name(), host, port, database, err),
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

// GORMConnectionError is returned when GORM cannot wrap the pool.
func GORMConnectionError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  "Cannot connect to database with GORM",
		Err:  fmt.Errorf("from %s: failed to connect with GORM: %w", fn.Name(), err),
	}
}

// MigrateError is returned when AutoMigrate fails.
func MigrateError(err error) error {
	msg := `Cannot migrate database schema

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: failed to migrate schema: %w", fn.Name(), err),
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

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBExecError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot drop %s: %w", fn.Name(), table, err),
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
