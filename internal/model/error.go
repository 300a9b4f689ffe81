package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Message       string `json:"message"`
	Error         string `json:"error,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// MessageResponse is the acknowledgment body returned by write endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON = "INVALID_JSON"
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeConflict    = "CONFLICT"
	ErrCodeAuthFailed  = "AUTH_FAILED"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeStorage     = "STORAGE_ERROR"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

// DomainError is an error the HTTP layer knows how to map to a status code.
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

// Is matches domain errors by code so wrapped copies compare equal to the
// sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && (t.Message == "" || e.Message == t.Message)
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError attaches an underlying cause to a domain error.
func WrapDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors
var (
	ErrMissingCredentials = NewDomainError(ErrCodeValidation, "Please provide email and password")
	ErrUserExists         = NewDomainError(ErrCodeConflict, "User already exists")
	ErrInvalidCredentials = NewDomainError(ErrCodeAuthFailed, "Invalid email or password")
	ErrNoItems            = NewDomainError(ErrCodeValidation, "No items in transaction.")
	ErrItemWithoutProduct = NewDomainError(ErrCodeValidation, "Each item must reference a product _id")
	ErrInvalidBody        = NewDomainError(ErrCodeInvalidJSON, "Invalid request body")
	ErrNotFound           = NewDomainError(ErrCodeNotFound, "Record not found")
)

// CodeOf returns the domain error code carried by err, or ErrCodeInternal.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternal
}
