// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Common application-specific errors.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input provided")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("cannot transfer to yourself")
	ErrReceiverNotFound  = errors.New("receiver not found")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEntry    = errors.New("duplicate entry") // For cases like creating a user with existing username

	// Authentication failures.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	// ErrTransient marks store failures (lock timeout, deadlock, serialization
	// failure, cancelled statement) after which the whole operation was rolled back.
	ErrTransient = errors.New("transient store failure")
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}

// DateFormatError reports a query date that is not YYYY-MM-DD.
// It matches ErrInvalidDateFormat with errors.Is.
type DateFormatError struct {
	Param string
	Value string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date format for '%s', use YYYY-MM-DD", e.Param)
}

func (e *DateFormatError) Unwrap() error { return ErrInvalidDateFormat }
