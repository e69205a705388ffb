package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/errcode"
)

// LogFileError is returned when the log file cannot be opened for writing.
func LogFileError(path string, err error) error {
	msg := "Cannot open log file <em>%s</em>, " +
		"set log.destination to stderr to log to the terminal"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: open %s: %w", fn.Name(), path, err),
	}
}
