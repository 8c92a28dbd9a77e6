package schema

import (
	"errors"
	"fmt"
)

var (
	ErrUnsizedField     = errors.New("only the last field may be unsized")
	ErrUnsupportedWidth = errors.New("unsupported bit width")
	ErrUnsizedArm       = errors.New("sized variant has an unsized arm")
	ErrEmptyVariant     = errors.New("variant has no arms")
	ErrTooManyArms      = errors.New("variant has more arms than an 8-bit tag can address")
	ErrDuplicateField   = errors.New("duplicate field name")
	ErrUnsizedItem      = errors.New("array and vector items must be sized")
	ErrInvalidLength    = errors.New("array length must be positive")
	ErrInvalidName      = errors.New("invalid name")

	// ErrNameCollision is returned by Walk, not by constructors.
	ErrNameCollision = errors.New("two different types share a name")
)

// LayoutError is returned by type constructors when a schema violates a
// layout rule. Construction either succeeds completely or returns one of these.
type LayoutError struct {
	Type   Name
	Reason string
	Err    error
}

func (e *LayoutError) Error() string {
	msg := e.Err.Error()
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if len(e.Type) == 0 {
		return "layout: " + msg
	}
	return fmt.Sprintf("layout of %s: %s", e.Type.Snake(), msg)
}

func (e *LayoutError) Unwrap() error { return e.Err }

func layoutErr(name Name, err error, format string, args ...any) *LayoutError {
	return &LayoutError{Type: name, Reason: fmt.Sprintf(format, args...), Err: err}
}
