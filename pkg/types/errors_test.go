package types

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	validation := []error{
		ErrInvalidName, ErrInvalidContent, ErrNegativeCount, ErrCountTooLarge,
		ErrCountExceedsTable, ErrCountExceedsPool, ErrInvalidRow,
	}
	for _, err := range validation {
		assert.True(t, IsValidation(err), "%v should be a validation error", err)
		assert.False(t, errors.Is(err, ErrPersistence))
	}

	assert.ErrorIs(t, ErrCorruptData, ErrPersistence)
	assert.ErrorIs(t, ErrUnsupportedVersion, ErrPersistence)
	assert.False(t, errors.Is(ErrNoData, ErrPersistence))
}

func TestPersistenceErrorUnwrap(t *testing.T) {
	err := &PersistenceError{Op: "save", Path: "/x/tables.jsonl", Err: fs.ErrPermission}

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Contains(t, err.Error(), "save /x/tables.jsonl")
}
