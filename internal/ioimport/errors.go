package ioimport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/errcode"
)

// ReadError is returned when a roster file cannot be read.
func ReadError(path string, err error) error {
	msg := "Cannot read roster file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}

// ParseError is returned when a roster file is not valid YAML or JSON.
func ParseError(path string, err error) error {
	msg := `Cannot parse roster file <em>%s</em>

<em>Expected layout:</em>
  families:
    - label: Dupont family
      rooms: ["12"]
      arrival: 2023-05-10
      persons:
        - first_name: Marie
          last_name: Dupont
          dob: 29/02/1980
          sex: F`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse %s: %w", fn.Name(), path, err),
	}
}

// RecordError is returned when a family or person entry is invalid.
func RecordError(family int, reason string) error {
	msg := "Family entry <em>%d</em> is invalid: %s"
	vars := []any{family, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportRecordError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: family entry %d: %s",
			fn.Name(), family, reason),
	}
}
