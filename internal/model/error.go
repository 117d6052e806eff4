package model

import (
	"errors"
)

// Standard error codes for API responses
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInvalidIdentifier = "INVALID_IDENTIFIER"
	ErrCodeStoreUnavailable  = "STORE_UNAVAILABLE"
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-level error carrying a stable code.
// Two domain errors match under errors.Is when their codes are equal.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of the error that carries cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Err:     cause,
	}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrFoodNotFound      = NewDomainError(ErrCodeNotFound, "Food not found")
	ErrRequestNotFound   = NewDomainError(ErrCodeNotFound, "Request not found")
	ErrInvalidIdentifier = NewDomainError(ErrCodeInvalidIdentifier, "Invalid identifier")
	ErrStoreUnavailable  = NewDomainError(ErrCodeStoreUnavailable, "Store unavailable")
	ErrValidation        = NewDomainError(ErrCodeValidation, "Validation failed")
)

// AsDomainError returns the first DomainError in err's chain, or nil.
func AsDomainError(err error) *DomainError {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return nil
}
