package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes used across the console core.
const (
	CodeTransientFetch   = "TRANSIENT_FETCH"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeSubmissionFailed = "SUBMISSION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeInternal         = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewTransientFetchError marks a failed queue load. The cached list is kept,
// so the exposed surface maps it to a bad-gateway response.
func NewTransientFetchError(operation string, err error) error {
	return &DomainError{
		Code:       CodeTransientFetch,
		Message:    fmt.Sprintf("failed to load %s from backend", operation),
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewSubmissionError marks a failed answer submission. Pending list and draft
// stay untouched so the supervisor can resubmit manually.
func NewSubmissionError(requestID string, err error) error {
	return &DomainError{
		Code:       CodeSubmissionFailed,
		Message:    "failed to submit answer",
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"request_id": requestID},
		Err:        err,
	}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsCode reports whether err carries the given domain error code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
