package iomerge

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/umilog/umiseed/pkg/errcode"
)

func ReadInputError(path string, err error) error {
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

func NoInputError(paths []string) error {
	msg := "None of the input files exist: <em>%s</em>"
	vars := []any{strings.Join(paths, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MergeNoInputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no merge inputs found", fn),
	}
}

func WriteOutputError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MergeWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write %s: %w",
			fn, path, err),
	}
}
