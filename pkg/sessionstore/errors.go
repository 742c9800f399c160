package sessionstore

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no value is stored under a key.
var ErrNotFound = errors.New("session not found")

type StoreError struct {
	Operation string
	Err       error
	Retryable bool
}

func NewStoreError(operation string, err error, retryable bool) *StoreError {
	return &StoreError{
		Operation: operation,
		Err:       err,
		Retryable: retryable,
	}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("session store operation %s failed: %v", e.Operation, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
