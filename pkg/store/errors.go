package store

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/errcode"
)

// NotFoundError is returned when a family or person does not exist.
func NotFoundError(kind string, id int) error {
	msg := "Cannot find %s <em>%d</em>"
	vars := []any{kind, id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s %d not found", fn.Name(), kind, id),
	}
}

// InsertError is returned when a record cannot be saved.
func InsertError(kind string, err error) error {
	msg := "Cannot save %s"
	vars := []any{kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreInsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot insert %s: %w", fn.Name(), kind, err),
	}
}

// UpdateError is returned when a record cannot be changed.
func UpdateError(kind string, id int, err error) error {
	msg := "Cannot update %s <em>%d</em>"
	vars := []any{kind, id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreUpdateError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot update %s %d: %w",
			fn.Name(), kind, id, err),
	}
}

// DeleteError is returned when a record cannot be removed.
func DeleteError(kind string, id int, err error) error {
	msg := "Cannot delete %s <em>%d</em>"
	vars := []any{kind, id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreDeleteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot delete %s %d: %w",
			fn.Name(), kind, id, err),
	}
}
