package ioupload

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/umilog/umiseed/pkg/errcode"
)

func CredentialsError() error {
	msg := "Missing R2 credentials: set <em>R2_ACCOUNT_ID</em>, " +
		"<em>R2_ACCESS_KEY_ID</em> and <em>R2_SECRET_ACCESS_KEY</em>"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadCredentialsError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: missing R2 credentials", fn),
	}
}

func ClientError(err error) error {
	msg := "Cannot create R2 client"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadClientError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot create R2 client: %w", fn, err),
	}
}

func ObjectError(key string, err error) error {
	msg := "Cannot upload <em>%s</em>"
	vars := []any{key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadObjectError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot upload %s: %w",
			fn, key, err),
	}
}

func MediaFileError(path string, err error) error {
	msg := "Cannot use media file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadMediaFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: media file %s: %w",
			fn, path, err),
	}
}
