package abit

import (
	"errors"
	"fmt"
)

// ErrorKind classifies encoding, decoding and accessor errors. An
// ErrorKind is itself an error, so callers can test for a class with
// errors.Is(err, abit.ErrCorruptEncoding).
type ErrorKind int

const (
	ErrInvalidKey ErrorKind = iota + 1
	ErrTypeMismatch
	ErrIndexOutOfRange
	ErrValueTooLarge
	ErrCorruptEncoding
	ErrUnsupportedInputType
	ErrKeyNotFound
	ErrCyclicValue
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidKey:
		return "invalid key"
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrIndexOutOfRange:
		return "index out of range"
	case ErrValueTooLarge:
		return "value too large"
	case ErrCorruptEncoding:
		return "corrupt encoding"
	case ErrUnsupportedInputType:
		return "unsupported input type"
	case ErrKeyNotFound:
		return "key not found"
	case ErrCyclicValue:
		return "cyclic value"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) Error() string { return "abit: " + k.String() }

// Error carries offset and classification for better diagnostics.
type Error struct {
	Kind ErrorKind
	// Offset is the input position of a decode error, or -1.
	Offset int64
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "abit: " + e.Kind.String()
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at %d", e.Offset)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the ErrorKind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// KindOf returns the ErrorKind carried by err, or 0 when err is not an
// abit error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	return 0
}

// NewError returns an error of the given kind that is not tied to an
// input position.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: -1, Detail: fmt.Sprintf(format, args...)}
}

// WrapError is NewError with an underlying cause.
func WrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	e := NewError(kind, format, args...)
	e.Err = err
	return e
}

func corruptAt(off int, format string, args ...any) *Error {
	return &Error{Kind: ErrCorruptEncoding, Offset: int64(off), Detail: fmt.Sprintf(format, args...)}
}
