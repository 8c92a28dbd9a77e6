package wire

import (
	"errors"
	"fmt"

	"github.com/Alia5/flatgen/schema"
)

var (
	ErrUnexpectedEOF = errors.New("unexpected eof")
	ErrInvalidData   = errors.New("invalid data")
	// ErrInvalidValue is returned by Store when the value is not an
	// instance of the type.
	ErrInvalidValue = errors.New("value is not an instance of the type")
)

// ErrorKind classifies an IoError.
type ErrorKind uint8

const (
	UnexpectedEOF ErrorKind = iota
	InvalidData
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEOF:
		return "unexpected eof"
	case InvalidData:
		return "invalid data"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// IoError reports why bytes could not be decoded as a type.
type IoError struct {
	Kind   ErrorKind
	Type   schema.Name
	Offset int
	Detail string
}

func (e *IoError) Error() string {
	msg := fmt.Sprintf("load %s at offset %d: %s", e.Type.Snake(), e.Offset, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *IoError) Unwrap() error {
	if e.Kind == InvalidData {
		return ErrInvalidData
	}
	return ErrUnexpectedEOF
}

func eof(t schema.Type, offset, need, have int) *IoError {
	return &IoError{
		Kind:   UnexpectedEOF,
		Type:   t.Name(),
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
	}
}

func invalid(t schema.Type, offset int, format string, args ...any) *IoError {
	return &IoError{
		Kind:   InvalidData,
		Type:   t.Name(),
		Offset: offset,
		Detail: fmt.Sprintf(format, args...),
	}
}

func invalidValue(t schema.Type, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidValue, t.Name().Snake(), fmt.Sprintf(format, args...))
}
