package roster

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/errcode"
)

// InvalidError reports a roster that breaks the input contract.
func InvalidError(format string, args ...any) error {
	reason := fmt.Sprintf(format, args...)
	msg := "Roster is invalid: <em>%s</em>"
	vars := []any{reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RosterInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid roster: %s", fn.Name(), reason),
	}
}

// DateError reports a date string in none of the accepted formats.
func DateError(s string) error {
	msg := "Cannot parse date <em>%s</em>, use YYYY-MM-DD or DD/MM/YYYY"
	vars := []any{s}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RosterDateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse date %q", fn.Name(), s),
	}
}
