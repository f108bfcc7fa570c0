package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when type is not income or expense.
	ErrInvalidTransactionType = errors.New("type must be income or expense")

	// ErrInvalidAmount is returned when the amount is negative.
	ErrInvalidAmount = errors.New("amount must be greater than or equal to zero")

	// ErrInvalidCurrency is returned when the currency is not ARS or USD.
	ErrInvalidCurrency = errors.New("currency must be ARS or USD")

	// ErrMissingCategory is returned when the category is empty.
	ErrMissingCategory = errors.New("category is required")

	// ErrMissingDate is returned when the transaction date is missing.
	ErrMissingDate = errors.New("date is required")

	// ErrDescriptionTooLong is returned when the description exceeds the limit.
	ErrDescriptionTooLong = errors.New("description is too long")

	// ErrUnauthorizedTransaction is returned when a user operates on another user's transaction.
	ErrUnauthorizedTransaction = errors.New("transaction belongs to another user")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidAmount          TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidCurrency        TransactionErrorCode = "TXN-010003"
	ErrCodeMissingCategory        TransactionErrorCode = "TXN-010004"
	ErrCodeMissingDate            TransactionErrorCode = "TXN-010005"
	ErrCodeDescriptionTooLong     TransactionErrorCode = "TXN-010006"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound     TransactionErrorCode = "TXN-020001"
	ErrCodeUnauthorizedTransaction TransactionErrorCode = "TXN-020002"

	// Internal errors (99XXXX)
	ErrCodeTransactionInternalError TransactionErrorCode = "TXN-990001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
