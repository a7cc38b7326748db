package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidReference  = errors.New("invalid reference")
	ErrImmutableState    = errors.New("contract is immutable")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrConflict          = errors.New("concurrent modification")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInternal          = errors.New("internal error")
)

// Error codes rendered to clients
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidReference  = "INVALID_REFERENCE"
	CodeImmutableState    = "IMMUTABLE_STATE"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodePermissionDenied  = "PERMISSION_DENIED"
	CodeConflict          = "CONFLICT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInternal          = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

// Unwrap exposes the sentinel so callers can use errors.Is.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetail attaches a structured detail and returns the same error.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Common error constructors

func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrValidation)
}

// MissingRequiredField is the validation failure for a required blueprint field.
func MissingRequiredField(label string) *AppError {
	return Validation(fmt.Sprintf("field '%s' is required", label)).
		WithDetail("field", label)
}

// InvalidStatusValue is returned for statuses outside the closed enumeration.
func InvalidStatusValue(value string, allowed []string) *AppError {
	return Validation(fmt.Sprintf("invalid status. Must be one of: %s", strings.Join(allowed, ", "))).
		WithDetail("attemptedStatus", value).
		WithDetail("allowedStatuses", allowed)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func InvalidReference(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidReference, message, ErrInvalidReference)
}

func Immutable(status string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeImmutableState,
		fmt.Sprintf("contract with status '%s' is immutable and cannot be modified", status),
		ErrImmutableState).
		WithDetail("currentStatus", status)
}

func InvalidTransition(from, to string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidTransition,
		fmt.Sprintf("invalid transition from '%s' to '%s'", from, to),
		ErrInvalidTransition).
		WithDetail("currentStatus", from).
		WithDetail("attemptedStatus", to)
}

func PermissionDenied(role, target string, requiredRoles []string) *AppError {
	msg := fmt.Sprintf("role '%s' does not have permission to transition contracts to '%s'", role, target)
	if len(requiredRoles) > 0 {
		msg += ". Required role: " + strings.Join(requiredRoles, " or ")
	}
	return NewAppError(http.StatusForbidden, CodePermissionDenied, msg, ErrPermissionDenied).
		WithDetail("role", role).
		WithDetail("attemptedStatus", target).
		WithDetail("requiredRoles", requiredRoles)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrConflict)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func InternalError(err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}
