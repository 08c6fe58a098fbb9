package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates the account balance cannot cover the trade value.
// This is a normal rejection, not a fault; no state changes when it is returned.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInsufficientHoldings indicates the account does not hold enough of the
// requested currency to cover a sale. Also a normal rejection.
var ErrInsufficientHoldings = errors.New("insufficient holdings")

// ErrRateUnavailable indicates the requested currency code could not be priced
// by the rate provider. The trade attempt is rejected and state is unchanged.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// AppError carries a status code alongside a message and cause.
// Repositories use it to wrap storage failures.
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
