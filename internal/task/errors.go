package task

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of all input-rejected errors.
	ErrValidation = errors.New("invalid task")

	// ErrEmptyText is returned by Add when the text is empty after trimming.
	ErrEmptyText = fmt.Errorf("%w: text required", ErrValidation)

	// ErrInvalidCategory is returned for a category outside Categories.
	ErrInvalidCategory = fmt.Errorf("%w: unknown category", ErrValidation)

	// ErrNotFound is returned when an operation names an id that is not in the list.
	ErrNotFound = errors.New("task not found")

	// ErrMalformed is returned by a Storage whose persisted data does not parse.
	ErrMalformed = errors.New("malformed task data")
)

// PersistenceError reports a storage failure. When returned from a mutating
// operation the in-memory change has already been applied and is kept.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s tasks: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func notFound(id int64) error {
	return fmt.Errorf("%w: %d", ErrNotFound, id)
}
