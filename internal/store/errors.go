package store

import (
	"errors"
	"fmt"
)

// ErrAllocatorExhausted is returned when the item id counter cannot advance
// without overflowing. The counter is left unchanged.
var ErrAllocatorExhausted = errors.New("item id allocator exhausted")

// IOError reports that persisted state could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CorruptDataError reports persisted state that exists but does not decode
// into the expected shape.
type CorruptDataError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CorruptDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt data in %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt data in %s: %s", e.Path, e.Reason)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

func ioErr(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

func corrupt(path, reason string, err error) error {
	return &CorruptDataError{Path: path, Reason: reason, Err: err}
}

func IsCorrupt(err error) bool {
	var c *CorruptDataError
	return errors.As(err, &c)
}
