package error

import "errors"

// Statement import domain errors.
var (
	// ErrStatementNotFound is returned when a statement import does not exist.
	ErrStatementNotFound = errors.New("statement import not found")

	// ErrMissingFilePath is returned when an import request omits the stored PDF path.
	ErrMissingFilePath = errors.New("file_path is required")

	// ErrInvalidStatementMonth is returned when the statement month is missing or malformed.
	ErrInvalidStatementMonth = errors.New("statement_month must be a valid YYYY-MM-DD date")

	// ErrExtractionFailed is returned when the statement extractor cannot
	// produce structured data from the PDF.
	ErrExtractionFailed = errors.New("failed to extract statement data")

	// ErrExtractorUnavailable is returned when the extractor service is not configured.
	ErrExtractorUnavailable = errors.New("statement extractor is not configured")

	// ErrStatementAlreadyImported is returned when the same billing month was
	// already imported for the user.
	ErrStatementAlreadyImported = errors.New("statement month already imported")
)

// StatementErrorCode defines error codes for statement errors.
// Format: STM-XXYYYY where XX is category and YYYY is specific error.
type StatementErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingFilePath         StatementErrorCode = "STM-010001"
	ErrCodeInvalidStatementMonth   StatementErrorCode = "STM-010002"
	ErrCodeStatementAlreadyImported StatementErrorCode = "STM-010003"

	// Lookup errors (02XXXX)
	ErrCodeStatementNotFound StatementErrorCode = "STM-020001"

	// Extraction errors (03XXXX)
	ErrCodeExtractionFailed     StatementErrorCode = "STM-030001"
	ErrCodeExtractorUnavailable StatementErrorCode = "STM-030002"

	// Internal errors (99XXXX)
	ErrCodeStatementInternalError StatementErrorCode = "STM-990001"
)

// StatementError represents a statement error with code and message.
type StatementError struct {
	Code    StatementErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatementError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatementError) Unwrap() error {
	return e.Err
}

// NewStatementError creates a new StatementError with the given code and message.
func NewStatementError(code StatementErrorCode, message string, err error) *StatementError {
	return &StatementError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
