package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	WriteFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBQueryError
	DBScanError
	DBExecError
	DBOptimizeError

	// Schema errors
	SchemaGORMConnectionError
	SchemaMigrateError

	// Store errors
	StoreNotFoundError
	StoreInsertError
	StoreUpdateError
	StoreDeleteError

	// Roster errors
	RosterInvalidError
	RosterDateError

	// Import errors
	ImportReadError
	ImportParseError
	ImportRecordError

	// Dashboard errors
	EngineContractError

	// Report errors
	ReportFormatError
	ReportEncodeError

	// Command line errors
	CmdArgumentError
)
