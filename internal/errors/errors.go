package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// BadRequest creates a BAD_REQUEST error with a specific message
func BadRequest(message string) *DomainError {
	return NewDomainError("BAD_REQUEST", message)
}

// Predefined domain errors
var (
	// User errors
	ErrUserNotFound       = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrEmailExists        = NewDomainError("EMAIL_EXISTS", "user with this email already exists")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid password provided")
	ErrIncorrectPassword  = NewDomainError("INCORRECT_PASSWORD", "current password is incorrect")

	// Authentication errors
	ErrUnauthorized = NewDomainError("UNAUTHORIZED", "unauthorized request")
	// ErrTokenExpired and ErrInvalidToken are distinct so clients can decide
	// whether to attempt a refresh or force a re-login.
	ErrTokenExpired = NewDomainError("TOKEN_EXPIRED", "token has expired")
	ErrInvalidToken = NewDomainError("INVALID_TOKEN", "invalid token")
	ErrStaleToken   = NewDomainError("STALE_TOKEN", "refresh token expired or already in use")

	// Job errors
	ErrJobNotFound  = NewDomainError("JOB_NOT_FOUND", "job not found")
	ErrInvalidJobID = NewDomainError("INVALID_JOB_ID", "enter a valid job id")
	ErrForbidden    = NewDomainError("FORBIDDEN", "you are not authorized for this action")

	// Validation errors
	ErrBadRequest = NewDomainError("BAD_REQUEST", "invalid request")

	// System errors
	ErrInternal = NewDomainError("INTERNAL_ERROR", "internal server error")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// Is reports whether err matches target, unwrapping as needed
func Is(err, target error) bool {
	if de := GetDomainError(err); de != nil {
		if dt, ok := target.(*DomainError); ok {
			return de.Code == dt.Code
		}
	}
	return errors.Is(err, target)
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	// Default to internal server error for unknown errors
	return http.StatusInternalServerError
}

// domainErrorToHTTPStatus maps specific domain errors to HTTP status codes
func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "BAD_REQUEST", "INVALID_JOB_ID":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "TOKEN_EXPIRED", "INVALID_TOKEN", "STALE_TOKEN",
		"INCORRECT_PASSWORD":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN", "INVALID_CREDENTIALS":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND", "JOB_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS":
		return http.StatusConflict

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
