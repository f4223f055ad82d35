package iooptimize

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/umilog/umiseed/pkg/errcode"
)

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

func FTSCountError(table string, err error) error {
	msg := "Cannot count rows of <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OptimizerFTSCountError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot count rows of %s: %w",
			fn, table, err),
	}
}

func FTSRebuildError(table string, err error) error {
	msg := "Cannot rebuild FTS index <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OptimizerFTSRebuildError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot rebuild %s: %w",
			fn, table, err),
	}
}

func VacuumError(err error) error {
	msg := "Cannot compact database"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OptimizerVacuumError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot compact database: %w", fn, err),
	}
}
