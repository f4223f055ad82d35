package iopopulate

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

func DataFileError(path string, err error) error {
	msg := "Cannot read seed file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PopulateDataFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read seed file %s: %w",
			fn, path, err),
	}
}

func InsertError(table string, err error) error {
	msg := "Cannot insert into <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PopulateInsertError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot insert into %s: %w",
			fn, table, err),
	}
}

func QueryError(table string, err error) error {
	msg := "Cannot query <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PopulateQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot query %s: %w",
			fn, table, err),
	}
}

func RarityError(err error) error {
	msg := "Cannot recalculate species rarity"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PopulateRarityError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot recalculate rarity: %w",
			fn, err),
	}
}
