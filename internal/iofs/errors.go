package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/errcode"
)

// CreateDirError is returned when a kardex directory cannot be made.
func CreateDirError(dir string, err error) error {
	msg := "Cannot create directory <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: mkdir %s: %w", fn.Name(), dir, err),
	}
}

// WriteConfigError is returned when the config template cannot be saved.
func WriteConfigError(path string, err error) error {
	msg := "Cannot write default configuration to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: write %s: %w", fn.Name(), path, err),
	}
}

// ReadConfigError is returned when config.yaml cannot be loaded.
func ReadConfigError(path string, err error) error {
	msg := "Cannot load configuration from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: load config %s: %w", fn.Name(), path, err),
	}
}
