package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBOpenError
	DBNotConnectedError
	DBTableExistsCheckError
	DBRemoveFileError

	// Schema errors
	SchemaCreateError
	SchemaMigrationRecordError

	// Populate errors
	PopulateDataFileError
	PopulateInsertError
	PopulateQueryError
	PopulateRarityError

	// Optimizer errors
	OptimizerFTSCountError
	OptimizerFTSRebuildError
	OptimizerVacuumError

	// Validate errors
	ValidateDataDirError
	ValidateFailedError

	// Merge errors
	MergeNoInputError
	MergeWriteError

	// Fetch errors
	FetchCheckpointError
	FetchOutputError

	// Upload errors
	UploadCredentialsError
	UploadClientError
	UploadObjectError
	UploadMediaFileError
)
