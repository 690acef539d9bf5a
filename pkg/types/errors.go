package types

import (
	"errors"
	"fmt"
)

// Collection operation errors.
var (
	ErrTypeMismatch  = errors.New("type mismatch")
	ErrIndexNotFound = errors.New("index not found")
)

// Value type resolution errors.
var (
	ErrUnknownValueType = errors.New("unknown value type")
	ErrInvalidKind      = errors.New("invalid kind")
)

// TypeMismatchError reports a value rejected by a collection's declared type.
// It matches ErrTypeMismatch under errors.Is.
type TypeMismatchError struct {
	Expected string // Name of the declared value type.
	Actual   string // Dynamic type of the rejected value.
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("wrong value type: %q expected, but %q was given", e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// IndexNotFoundError reports a key that is not present in a collection.
// It matches ErrIndexNotFound under errors.Is.
type IndexNotFoundError struct {
	Key Key
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("index %s out of range", e.Key)
}

func (e *IndexNotFoundError) Unwrap() error {
	return ErrIndexNotFound
}
