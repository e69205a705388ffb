package ioreport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/errcode"
)

// FormatError is returned for an unknown output format.
func FormatError(s string) error {
	msg := "Output format <em>%s</em> is not supported, use text, json, csv or pdf"
	vars := []any{s}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReportFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown format %q", fn.Name(), s),
	}
}

// EncodeError is returned when a report cannot be written.
func EncodeError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReportEncodeError,
		Msg:  "Cannot write the report",
		Err:  fmt.Errorf("from %s: cannot encode report: %w", fn.Name(), err),
	}
}
