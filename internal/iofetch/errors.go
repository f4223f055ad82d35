package iofetch

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/umilog/umiseed/pkg/errcode"
)

func CheckpointError(path string, err error) error {
	msg := "Cannot use checkpoint log <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchCheckpointError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: checkpoint %s: %w",
			fn, path, err),
	}
}

func OutputError(path string, err error) error {
	msg := "Cannot write fetch output <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchOutputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: fetch output %s: %w",
			fn, path, err),
	}
}

func NoCatalogError(dir string) error {
	msg := "No species catalog found in <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FetchOutputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no species catalog in %s", fn, dir),
	}
}
