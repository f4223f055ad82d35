package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/umilog/umiseed/pkg/errcode"
)

func OpenError(path string, err error) error {
	msg := "Cannot open database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open database %s: %w",
			fn, path, err),
	}
}

func RemoveFileError(path string, err error) error {
	msg := "Cannot remove stale database file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBRemoveFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot remove %s: %w",
			fn, path, err),
	}
}

func NotConnectedError() error {
	msg := "Database is not open"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: database is not open", fn),
	}
}

func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot check table %s: %w",
			fn, table, err),
	}
}
