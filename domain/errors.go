package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmptyCart       = errors.New("no items to record")
)

// ValidationError reports operator input that could not be parsed.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// StorageError wraps any failure coming back from the database driver.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// PrintError means the receipt file exists at Path but could not be dispatched.
type PrintError struct {
	Path string
	Err  error
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("print %s: %v", e.Path, e.Err)
}

func (e *PrintError) Unwrap() error { return e.Err }
