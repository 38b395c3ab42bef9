package errs

import (
	"fmt"
	"strings"
)

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// ValidationError means the client sent a malformed or incomplete request.
type ValidationError struct {
	ErrorMessage
}

// ParseError means no parser in the chain could extract a usable expense
// record. The Message holds the internal detail; the HTTP layer replaces it
// with a generic message pointing at the logs.
type ParseError struct {
	ErrorMessage
}

type NotFoundError struct {
	ErrorMessage
}

// MissingFieldError reports which required fields were absent from a model
// response.
type MissingFieldError struct {
	ErrorMessage
	Fields []string
}

type InvalidAmountError struct {
	ErrorMessage
}

// QuotaError signals provider quota exhaustion. The parser router consumes
// it to decide whether to fall back to the regex parser.
type QuotaError struct {
	ErrorMessage
}

// ScanError wraps any failure on the receipt-scan path. Its message is
// forwarded verbatim to the client.
type ScanError struct {
	ErrorMessage
	Err error
}

func (e *ScanError) Unwrap() error { return e.Err }

// DatabaseUnavailableError means no datastore handle could be established.
type DatabaseUnavailableError struct {
	ErrorMessage
}

type DatabaseError struct {
	ErrorMessage
	Operation string
}

// ExternalServiceError is a failure from a hosted collaborator (model API,
// datastore). Transient failures map to 503, the rest to 500 with the
// provider message forwarded.
type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewParseError(message string) *ParseError {
	return &ParseError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewMissingFieldError(fields []string) *MissingFieldError {
	return &MissingFieldError{
		ErrorMessage: ErrorMessage{Message: "Missing required fields: " + strings.Join(fields, ", ")},
		Fields:       fields,
	}
}

func NewInvalidAmountError(value any) *InvalidAmountError {
	return &InvalidAmountError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("Invalid amount value: %v", value)},
	}
}

func NewQuotaError(message string) *QuotaError {
	return &QuotaError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewScanError(cause error) *ScanError {
	return &ScanError{
		ErrorMessage: ErrorMessage{Message: "Receipt scanning failed: " + cause.Error()},
		Err:          cause,
	}
}

func NewDatabaseUnavailableError() *DatabaseUnavailableError {
	return &DatabaseUnavailableError{
		ErrorMessage: ErrorMessage{Message: "Database connection not available"},
	}
}

func NewDatabaseError(operation, message string) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
	}
}

func NewExternalServiceError(service string, transient bool, message string) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Transient:    transient,
	}
}
