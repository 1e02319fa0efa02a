package service

import (
	"errors"
	"fmt"
)

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeNotFound            = "not_found"
	ErrCodeInvalidPIN          = "invalid_pin"
	ErrCodeSameAccount         = "same_account"
	ErrCodeInvalidDestination  = "invalid_destination"
	ErrCodeDestinationNotFound = "destination_not_found"
	ErrCodeInsufficientFunds   = "insufficient_funds"
	ErrCodeInvalidAmount       = "invalid_amount"
	ErrCodeKeyspaceExhausted   = "keyspace_exhausted"
	ErrCodeInternalError       = "internal_error"
)

// ErrorCode extracts the ServiceError code from err, or ErrCodeInternalError
// if err carries no code.
func ErrorCode(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ErrCodeInternalError
}
