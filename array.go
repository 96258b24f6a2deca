package abit

import (
	"iter"
	"slices"
)

// Array is an ordered list of values. Duplicates are allowed and
// insertion order is preserved. The zero value is an empty Array. A value
// that contains the Array itself is rejected with ErrCyclicValue.
type Array struct {
	values []Value
}

// NewArray returns an Array holding values in order. Nil values are
// stored as Null.
func NewArray(values ...Value) *Array {
	a := &Array{values: make([]Value, 0, len(values))}
	for _, v := range values {
		a.values = append(a.values, normalize(v))
	}
	return a
}

func (*Array) Kind() Kind { return KindArray }

func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

func (a *Array) IsEmpty() bool { return a.Len() == 0 }

func (a *Array) checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return NewError(ErrIndexOutOfRange, "index %d, length %d", i, a.Len())
	}
	return nil
}

// Get returns the value at index i.
func (a *Array) Get(i int) (Value, error) {
	if err := a.checkIndex(i, a.Len()); err != nil {
		return nil, err
	}
	return a.values[i], nil
}

// Add appends values to the end of the array. Nothing is appended if any
// value would make the array contain itself.
func (a *Array) Add(values ...Value) error {
	for _, v := range values {
		if reaches(v, a) {
			return cyclic(a)
		}
	}
	for _, v := range values {
		a.values = append(a.values, normalize(v))
	}
	return nil
}

// Insert places v at index i, shifting the element currently there and
// all following elements one position right. i may equal Len.
func (a *Array) Insert(i int, v Value) error {
	if err := a.checkIndex(i, a.Len()+1); err != nil {
		return err
	}
	if reaches(v, a) {
		return cyclic(a)
	}
	a.values = slices.Insert(a.values, i, normalize(v))
	return nil
}

// Set replaces the value at index i.
func (a *Array) Set(i int, v Value) error {
	if err := a.checkIndex(i, a.Len()); err != nil {
		return err
	}
	if reaches(v, a) {
		return cyclic(a)
	}
	a.values[i] = normalize(v)
	return nil
}

// Remove deletes the value at index i, shifting following elements left,
// and returns it.
func (a *Array) Remove(i int) (Value, error) {
	v, err := a.Get(i)
	if err != nil {
		return nil, err
	}
	a.values = slices.Delete(a.values, i, i+1)
	return v, nil
}

func (a *Array) Clear() {
	if a != nil {
		clear(a.values)
		a.values = a.values[:0]
	}
}

// All iterates over the elements in order.
func (a *Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i := 0; i < a.Len(); i++ {
			if !yield(i, a.values[i]) {
				return
			}
		}
	}
}

// TypeOf returns the kind of the value at index i.
func (a *Array) TypeOf(i int) (Kind, error) {
	v, err := a.Get(i)
	if err != nil {
		return 0, err
	}
	return v.Kind(), nil
}

func (a *Array) GetNull(i int) error {
	v, err := a.Get(i)
	if err != nil {
		return err
	}
	return AsNull(v)
}

func (a *Array) GetBool(i int) (bool, error) {
	v, err := a.Get(i)
	if err != nil {
		return false, err
	}
	return AsBool(v)
}

func (a *Array) GetInt(i int) (int64, error) {
	v, err := a.Get(i)
	if err != nil {
		return 0, err
	}
	return AsInt(v)
}

func (a *Array) GetBlob(i int) ([]byte, error) {
	v, err := a.Get(i)
	if err != nil {
		return nil, err
	}
	return AsBlob(v)
}

func (a *Array) GetString(i int) (string, error) {
	v, err := a.Get(i)
	if err != nil {
		return "", err
	}
	return AsString(v)
}

func (a *Array) GetArray(i int) (*Array, error) {
	v, err := a.Get(i)
	if err != nil {
		return nil, err
	}
	return AsArray(v)
}

func (a *Array) GetTree(i int) (*Tree, error) {
	v, err := a.Get(i)
	if err != nil {
		return nil, err
	}
	return AsTree(v)
}

// Equal reports whether a and o hold equal values in the same order.
func (a *Array) Equal(o *Array) bool {
	if a.Len() != o.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !Equal(a.values[i], o.values[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of a.
func (a *Array) Clone() *Array {
	out := &Array{values: make([]Value, a.Len())}
	for i := range out.values {
		out.values[i] = Clone(a.values[i])
	}
	return out
}
