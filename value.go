package abit

import (
	"bytes"
	"fmt"
)

// Value is one of Null, Bool, Int, Blob, String, *Array or *Tree. The set
// is closed: only this package can add implementations.
type Value interface {
	Kind() Kind
	isValue()
}

// Null is the ABIT null value.
type Null struct{}

// Bool is an ABIT boolean.
type Bool bool

// Int is an ABIT signed 64-bit integer.
type Int int64

// Blob is an ABIT byte string. Use NewBlob to build one from a slice the
// caller keeps using.
type Blob []byte

// String is an ABIT UTF-8 string.
type String string

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindInt }
func (Blob) Kind() Kind   { return KindBlob }
func (String) Kind() Kind { return KindString }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Blob) isValue()   {}
func (String) isValue() {}
func (*Array) isValue() {}
func (*Tree) isValue()  {}

// NewBlob returns a Blob holding a copy of b.
func NewBlob(b []byte) Blob {
	out := make(Blob, len(b))
	copy(out, b)
	return out
}

// normalize maps a nil interface to Null and nil containers to empty ones
// so stored values never need nil checks.
func normalize(v Value) Value {
	switch v := v.(type) {
	case nil:
		return Null{}
	case *Array:
		if v == nil {
			return NewArray()
		}
	case *Tree:
		if v == nil {
			return NewTree()
		}
	}
	return v
}

// reaches reports whether container is v itself or nested anywhere
// inside it.
func reaches(v Value, container Value) bool {
	switch v := v.(type) {
	case *Array:
		if Value(v) == container {
			return true
		}
		for _, elem := range v.values {
			if reaches(elem, container) {
				return true
			}
		}
	case *Tree:
		if Value(v) == container {
			return true
		}
		for _, elem := range v.entries {
			if reaches(elem, container) {
				return true
			}
		}
	}
	return false
}

func cyclic(container Value) *Error {
	return NewError(ErrCyclicValue, "%v cannot contain itself", container.Kind())
}

func kindName(v Value) string {
	if v == nil {
		return "nothing"
	}
	return v.Kind().String()
}

func mismatch(want Kind, v Value) *Error {
	return NewError(ErrTypeMismatch, "want %v, have %s", want, kindName(v))
}

// AsNull fails unless v is Null.
func AsNull(v Value) error {
	if _, ok := v.(Null); !ok {
		return mismatch(KindNull, v)
	}
	return nil
}

func AsBool(v Value) (bool, error) {
	b, ok := v.(Bool)
	if !ok {
		return false, mismatch(KindBool, v)
	}
	return bool(b), nil
}

func AsInt(v Value) (int64, error) {
	i, ok := v.(Int)
	if !ok {
		return 0, mismatch(KindInt, v)
	}
	return int64(i), nil
}

// AsBlob returns the blob's bytes without copying.
func AsBlob(v Value) ([]byte, error) {
	b, ok := v.(Blob)
	if !ok {
		return nil, mismatch(KindBlob, v)
	}
	return []byte(b), nil
}

func AsString(v Value) (string, error) {
	s, ok := v.(String)
	if !ok {
		return "", mismatch(KindString, v)
	}
	return string(s), nil
}

func AsArray(v Value) (*Array, error) {
	a, ok := v.(*Array)
	if !ok || a == nil {
		return nil, mismatch(KindArray, v)
	}
	return a, nil
}

func AsTree(v Value) (*Tree, error) {
	t, ok := v.(*Tree)
	if !ok || t == nil {
		return nil, mismatch(KindTree, v)
	}
	return t, nil
}

// Equal reports whether a and b hold the same structure. Blobs compare
// by content, so an empty Blob equals a nil one.
func Equal(a, b Value) bool {
	a, b = normalize(a), normalize(b)
	switch a := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		o, ok := b.(Bool)
		return ok && a == o
	case Int:
		o, ok := b.(Int)
		return ok && a == o
	case Blob:
		o, ok := b.(Blob)
		return ok && bytes.Equal(a, o)
	case String:
		o, ok := b.(String)
		return ok && a == o
	case *Array:
		o, ok := b.(*Array)
		return ok && a.Equal(o)
	case *Tree:
		o, ok := b.(*Tree)
		return ok && a.Equal(o)
	default:
		panic(fmt.Sprintf("abit: unexpected value type %T", a))
	}
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch v := normalize(v).(type) {
	case Null, Bool, Int, String:
		return v
	case Blob:
		return NewBlob(v)
	case *Array:
		return v.Clone()
	case *Tree:
		return v.Clone()
	default:
		panic(fmt.Sprintf("abit: unexpected value type %T", v))
	}
}
