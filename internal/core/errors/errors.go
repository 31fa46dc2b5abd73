// Package errors defines custom error types for the trustset library
package errors

import "fmt"

// DomainError represents errors in the trust-decision logic
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Common domain errors
var (
	ErrStoreUnavailable = &DomainError{
		Code:    "STORE_UNAVAILABLE",
		Message: "trust store could not be queried",
	}

	ErrAccessDenied = &DomainError{
		Code:    "ACCESS_DENIED",
		Message: "trust store refused the query",
	}

	ErrSettingsFetchFailed = &DomainError{
		Code:    "SETTINGS_FETCH_FAILED",
		Message: "failed to fetch trust settings for certificate",
	}

	ErrInvalidDisposition = &DomainError{
		Code:    "INVALID_DISPOSITION",
		Message: "disposition is not queryable",
	}

	ErrInvalidDomain = &DomainError{
		Code:    "INVALID_DOMAIN",
		Message: "settings domain is invalid",
	}
)

// NewDomainError creates a new domain error with context
func NewDomainError(base *DomainError, err error) error {
	return &DomainError{
		Code:    base.Code,
		Message: base.Message,
		Err:     err,
	}
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
