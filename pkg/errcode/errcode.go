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

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBNotConnectedError
	DBQueryError
	DBScanRowError

	// Survey errors
	SurveyOpenFileError
	SurveyHeaderError
	SurveyColumnMissingError
	SurveyFieldParseError
	SurveyEmptyError
	SurveyDatasetsConfigError

	// Community matrix errors
	MatrixNoObservationsError
	MatrixCovariateMissingError
	MatrixCovariateConflictError
	MatrixAlignmentError
	MatrixUnknownLabelError
	MatrixShapeError
	MatrixDuplicateLabelError
	MatrixFactorError

	// Transformation errors
	TransformNegativeValueError
	TransformZeroDivisionError
	TransformZeroVarianceError
	TransformFactorError
	TransformUnknownError

	// Ordination errors
	OrdinationTooFewSitesError
	OrdinationDecompositionError
	OrdinationAxisRangeError
	OrdinationScalingError
	OrdinationR2DomainError
	OrdinationFactorConstraintError
	OrdinationConstraintMissingError
	OrdinationSolveError

	// Export errors
	ExportWriteError
	ExportRenderError

	// Archive errors
	ArchiveOpenError
	ArchiveSchemaError
	ArchiveEncodeError
	ArchiveSaveError
	ArchiveListError
)
