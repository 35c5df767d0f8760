package services

import (
	"errors"
	"fmt"
)

// Checkout validation outcomes. All are recoverable by the shopper.
var (
	ErrMissingCustomerInfo = errors.New("missing customer info")
	ErrInvalidPickupSlot   = errors.New("invalid pickup slot")
	ErrEmptyCart           = errors.New("empty cart")
	ErrItemCapExceeded     = errors.New("item cap exceeded")
)

// ValidationError carries a checkout validation failure and a message fit for the shopper
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(kind error, message string) *ValidationError {
	return &ValidationError{Err: kind, Message: message}
}

func newValidationErrorf(kind error, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Err: kind, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is one of the checkout validation outcomes
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
