// Package error defines domain-specific errors for the application.
package error

import "errors"

// Analysis domain errors.
var (
	// ErrInvalidRate is returned when an exchange rate <= 0 is supplied.
	// Amounts cannot be converted safely, so the analysis must abort.
	ErrInvalidRate = errors.New("exchange rate must be greater than zero")

	// ErrUnsupportedCurrency is returned when an amount carries a currency
	// the normalizer has no conversion for.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// AnalysisErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalysisErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRate         AnalysisErrorCode = "ANL-010001"
	ErrCodeUnsupportedCurrency AnalysisErrorCode = "ANL-010002"

	// Internal errors (99XXXX)
	ErrCodeAnalysisInternalError AnalysisErrorCode = "ANL-990001"
)

// AnalysisError represents an analytics error with code and message.
type AnalysisError struct {
	Code    AnalysisErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError with the given code and message.
func NewAnalysisError(code AnalysisErrorCode, message string, err error) *AnalysisError {
	return &AnalysisError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
