package types

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the pool, the picker, the
// sampler, or a store matches exactly one of these with errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("table not found")
	ErrPersistence = errors.New("persistence failed")
)

// Validation errors.
var (
	ErrInvalidName       = fmt.Errorf("%w: table name must not be blank", ErrValidation)
	ErrInvalidContent    = fmt.Errorf("%w: table text must not be blank", ErrValidation)
	ErrNegativeCount     = fmt.Errorf("%w: output count must not be negative", ErrValidation)
	ErrCountTooLarge     = fmt.Errorf("%w: output count exceeds %d", ErrValidation, MaxOutputsPerTable)
	ErrCountExceedsTable = fmt.Errorf("%w: output count exceeds table entries without repeats", ErrValidation)
	ErrCountExceedsPool  = fmt.Errorf("%w: output count exceeds combined entries without repeats", ErrValidation)
	ErrInvalidRow        = fmt.Errorf("%w: selection row is not editable", ErrValidation)
)

// Persistence errors. ErrNoData is not a failure: it reports that nothing
// was ever stored.
var (
	ErrNoData             = errors.New("no stored tables")
	ErrCorruptData        = fmt.Errorf("%w: stored tables are corrupt", ErrPersistence)
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported format version", ErrPersistence)
)

// PersistenceError records the store operation and location that failed.
// It matches both ErrPersistence and the wrapped cause.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is a table lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
