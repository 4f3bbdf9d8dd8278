// Package exception provides the error type shared by the fanout engine and
// its infrastructure adapters. A BatchError records which module raised the
// error alongside a short message and the wrapped cause.
package exception

import (
	"errors"
	"fmt"
)

// BatchError is the error type raised by fanout components.
type BatchError struct {
	// Module indicates the component where the error occurred (e.g. "config", "engine").
	Module string
	// Message is a concise description of the error.
	Message string
	// OriginalErr is the wrapped original error, if any.
	OriginalErr error
}

// NewBatchError creates a new BatchError wrapping originalErr.
func NewBatchError(module, message string, originalErr error) *BatchError {
	return &BatchError{
		Module:      module,
		Message:     message,
		OriginalErr: originalErr,
	}
}

// NewBatchErrorf creates a new BatchError with a formatted message and no cause.
func NewBatchErrorf(module, format string, a ...interface{}) *BatchError {
	return &BatchError{
		Module:  module,
		Message: fmt.Sprintf(format, a...),
	}
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Module, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("[%s] %s", e.Module, e.Message)
}

// Unwrap returns the original error for errors.Unwrap.
func (e *BatchError) Unwrap() error {
	return e.OriginalErr
}

// IsBatchError determines if the given error is (or wraps) a BatchError.
func IsBatchError(err error) bool {
	var be *BatchError
	return errors.As(err, &be)
}

// ExtractErrorMessage returns the cleaner Message field for a BatchError, and
// the standard Error() string otherwise.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var be *BatchError
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}
