package properties

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches any *FormatError with errors.Is
	ErrFormat = errors.New("properties: malformed input")
	// ErrIO matches any *IOError with errors.Is
	ErrIO = errors.New("properties: i/o error")
)

// FormatError is returned for malformed escape sequences
// and (in strict mode) lines that can't be parsed.
// Line is 1-based, 0 if not known (e.g. from Unescape)
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("properties: line %d: %s", e.Line, e.Msg)
	}
	return "properties: " + e.Msg
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// IOError wraps an error returned by the underlying reader or writer
type IOError struct {
	// "read" or "write"
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("properties: %s: %s", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func ioErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var ioe *IOError
	if errors.As(err, &ioe) {
		return err
	}
	return &IOError{Op: op, Err: err}
}
