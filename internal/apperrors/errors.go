package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current state")

// ErrForbidden indicates that the operation is not allowed on this resource.
var ErrForbidden = errors.New("operation not allowed")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrRateUnavailable indicates that no exchange rate could be resolved for a
// currency pair, neither from the cache nor from the persisted history.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrConversionFailed indicates that a currency conversion could not be completed.
var ErrConversionFailed = errors.New("currency conversion failed")

// ErrVoucherUnbalanced indicates that a posting voucher's debits and credits do not match.
var ErrVoucherUnbalanced = errors.New("voucher debits and credits do not balance")

// ErrIntegrityViolation indicates that a stored invariant was broken (e.g. a
// posted transaction without journal lines).
var ErrIntegrityViolation = errors.New("ledger integrity violation")

// AppError wraps an underlying error with an HTTP-ish status code and a
// caller-facing message. Services return AppError so handlers can map
// failures without inspecting error strings.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with an explicit status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError creates a 400 AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewConflictError creates a 409 AppError wrapping ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrConflict}
}

// NewInternalError creates a 500 AppError wrapping the given cause.
func NewInternalError(message string, err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: err}
}
