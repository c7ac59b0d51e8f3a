package charge

import (
	"errors"
	"fmt"
)

// ErrEmptyOrder is returned when an order is finalized without any
// committed line items.
var ErrEmptyOrder = errors.New("order has no line items")

// ValidationError reports a missing or invalid input. The operation that
// returned it left the calculator unchanged.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}
