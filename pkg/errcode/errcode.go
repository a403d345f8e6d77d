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

	// Logging errors
	CreateLogFileError

	// Parameter file errors
	ParamsReadError
	ParamsDecodeError
	ParamsVersionError
	ParamsInvalidError

	// Spectrum errors
	SpectrumReadError
	SpectrumInvalidError

	// Model construction errors
	ModelConfigError
	ModelFactoryError

	// Store errors
	StoreBackendError
	StoreConnectionError
	StoreNotConnectedError
	StoreSchemaError
	StoreSaveError

	// Batch errors
	BatchListError
	BatchCancelledError
	BatchAllSpectraFailedError

	// Metrics errors
	MetricsWriteError
)
