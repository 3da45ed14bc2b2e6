package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found,
// or is no longer in a state where the requested action applies.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the authenticated user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates the request lacks valid authentication.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates an attempt to re-process an entity that has already
// reached a terminal state (e.g. confirming an already confirmed transfer).
var ErrConflict = errors.New("conflicting state")

// ErrInsufficientFunds indicates a fund debit larger than the fund's remaining balance.
var ErrInsufficientFunds = errors.New("insufficient fund balance")

// ErrInsufficientStock indicates a quantity movement larger than the available stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// AppError carries an HTTP-ish status code alongside the message for errors
// that originate below the service layer.
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

// NewAppError creates a new AppError with the given code, message and wrapped error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewConflictError creates an AppError wrapping ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrConflict}
}

// NewInternalServerError creates a generic 500 AppError.
func NewInternalServerError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: err}
}
