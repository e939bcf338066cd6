package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey is returned when a name already exists.
	ErrDuplicateKey = errors.New("name already exists")
	// ErrNotFound is returned when a name does not exist.
	ErrNotFound = errors.New("name not found")
	// ErrTooFewCandidates is returned when a pick has fewer than three distinct names to choose from.
	ErrTooFewCandidates = errors.New("not enough names to pick from")
	// ErrInvalidName is returned for blank names.
	ErrInvalidName = errors.New("name must not be blank")
	// ErrClosed is returned when the store is used after Close or before Load.
	ErrClosed = errors.New("storage is not open")
)

// StorageError wraps an unexpected failure of the database layer.
// Callers treat it as fatal.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Fault wraps err as a StorageError unless it is nil or already one of the
// recoverable sentinel errors.
func Fault(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsRecoverable(err) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// IsRecoverable reports whether err is a domain error the caller can report
// and continue from.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrDuplicateKey) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrTooFewCandidates) ||
		errors.Is(err, ErrInvalidName)
}

// IsFault reports whether err is an unexpected storage failure.
func IsFault(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
