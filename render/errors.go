package render

import (
	"errors"
	"fmt"
)

var (
	ErrResourceCreation = errors.New("resource creation failed")
	ErrDecode           = errors.New("image decode failed")
	ErrSubmission       = errors.New("command submission failed")
	ErrPresentation     = errors.New("presentation failed")
	ErrMap              = errors.New("buffer mapping failed")

	// ErrIndexOutOfRange is recoverable, unlike the other kinds.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Error attaches the failing operation to one of the sentinel kinds above.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Fatal reports whether err belongs to the fail-fast taxonomy.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrIndexOutOfRange)
}

// NewError is used by backends and the application shell to report a failure of the given kind.
func NewError(kind error, op string, err error) error {
	return newError(kind, op, err)
}
