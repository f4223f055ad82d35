package iovalidate

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/umilog/umiseed/pkg/errcode"
)

func DataDirError(dir string, err error) error {
	msg := "Seed data directory <em>%s</em> is not usable"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	if err == nil {
		err = fmt.Errorf("not a directory")
	}
	return &gn.Error{
		Code: errcode.ValidateDataDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot use data dir %s: %w",
			fn, dir, err),
	}
}

func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read %s: %w",
			fn, path, err),
	}
}

func FailedError(errors int) error {
	msg := "Validation failed with <em>%d</em> errors"
	vars := []any{errors}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ValidateFailedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: validation failed with %d errors",
			fn, errors),
	}
}
