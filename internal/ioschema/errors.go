package ioschema

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

func CreateSchemaError(stmt string, err error) error {
	msg := "Cannot create schema"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	if len(stmt) > 60 {
		stmt = stmt[:60] + "..."
	}
	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: schema statement %q failed: %w",
			fn, stmt, err),
	}
}

func MigrationRecordError(id string, err error) error {
	msg := "Cannot record migration <em>%s</em>"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaMigrationRecordError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot record migration %s: %w",
			fn, id, err),
	}
}
