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

// ErrUnauthorized indicates missing or invalid credentials, including a bad transaction PIN.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// Ledger errors.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAmountMismatch    = errors.New("verified amount does not match entry")
	ErrCurrencyMismatch  = errors.New("verified currency does not match entry")
)

// ErrVerificationUnavailable is transient: the provider could not be reached or did not answer.
// The entry stays pending and the caller may retry.
var ErrVerificationUnavailable = errors.New("payment verification unavailable")

// ErrVerificationRejected means the provider answered with a non-successful status.
var ErrVerificationRejected = errors.New("payment verification rejected")

// AppError carries an HTTP-ish code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsRetryable reports whether the operation may succeed if simply tried again.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrVerificationUnavailable)
}

// HTTPStatus maps an error to the status code handlers should answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrAmountMismatch),
		errors.Is(err, ErrCurrencyMismatch),
		errors.Is(err, ErrVerificationRejected),
		errors.Is(err, ErrUnauthorized):
		// a bad PIN is a 400 in the wallet API; bearer-token failures never get here
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrVerificationUnavailable):
		return http.StatusServiceUnavailable
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
