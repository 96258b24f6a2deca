package abit

import (
	"fmt"
	"iter"
)

// Tree maps keys to values. Keys are unique and between MinKeyLen and
// MaxKeyLen UTF-8 bytes long. Iteration and encoding follow canonical key
// order regardless of insertion order. The zero value is an empty Tree.
//
// A Tree takes ownership of the values put into it; a nested Tree or
// Array must not be shared between containers. A value that contains the
// Tree itself is rejected with ErrCyclicValue.
type Tree struct {
	entries map[string]Value
}

// NewTree returns an empty Tree.
func NewTree() *Tree { return &Tree{} }

func (*Tree) Kind() Kind { return KindTree }

// Put associates v with key, replacing any previous value. A nil v is
// stored as Null. Like assigning to a nil map, Put on a nil *Tree panics.
func (t *Tree) Put(key string, v Value) error {
	if t == nil {
		panic("abit: Put on nil *Tree")
	}
	if err := CheckKey(key); err != nil {
		return err
	}
	if reaches(v, t) {
		return cyclic(t)
	}
	if t.entries == nil {
		t.entries = make(map[string]Value)
	}
	t.entries[key] = normalize(v)
	return nil
}

// Get returns the value stored under key.
func (t *Tree) Get(key string) (Value, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.entries[key]
	return v, ok
}

func (t *Tree) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Remove deletes key and returns the value it held.
func (t *Tree) Remove(key string) (Value, bool) {
	v, ok := t.Get(key)
	if ok {
		delete(t.entries, key)
	}
	return v, ok
}

func (t *Tree) Clear() {
	if t != nil {
		clear(t.entries)
	}
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

func (t *Tree) IsEmpty() bool { return t.Len() == 0 }

// Keys returns the keys in canonical order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// All iterates over the entries in canonical key order.
func (t *Tree) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range t.Keys() {
			if !yield(k, t.entries[k]) {
				return
			}
		}
	}
}

// TypeOf returns the kind of the value stored under key.
func (t *Tree) TypeOf(key string) (Kind, error) {
	v, err := t.lookup(key)
	if err != nil {
		return 0, err
	}
	return v.Kind(), nil
}

func (t *Tree) lookup(key string) (Value, error) {
	v, ok := t.Get(key)
	if !ok {
		return nil, NewError(ErrKeyNotFound, "%q", key)
	}
	return v, nil
}

func (t *Tree) GetNull(key string) error {
	v, err := t.lookup(key)
	if err != nil {
		return err
	}
	return AsNull(v)
}

func (t *Tree) GetBool(key string) (bool, error) {
	v, err := t.lookup(key)
	if err != nil {
		return false, err
	}
	return AsBool(v)
}

func (t *Tree) GetInt(key string) (int64, error) {
	v, err := t.lookup(key)
	if err != nil {
		return 0, err
	}
	return AsInt(v)
}

func (t *Tree) GetBlob(key string) ([]byte, error) {
	v, err := t.lookup(key)
	if err != nil {
		return nil, err
	}
	return AsBlob(v)
}

func (t *Tree) GetString(key string) (string, error) {
	v, err := t.lookup(key)
	if err != nil {
		return "", err
	}
	return AsString(v)
}

func (t *Tree) GetArray(key string) (*Array, error) {
	v, err := t.lookup(key)
	if err != nil {
		return nil, err
	}
	return AsArray(v)
}

func (t *Tree) GetTree(key string) (*Tree, error) {
	v, err := t.lookup(key)
	if err != nil {
		return nil, err
	}
	return AsTree(v)
}

// Equal reports whether t and o hold the same keys with equal values.
func (t *Tree) Equal(o *Tree) bool {
	if t.Len() != o.Len() {
		return false
	}
	if t.Len() == 0 {
		return true
	}
	for k, v := range t.entries {
		ov, ok := o.entries[k]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

// String returns the canonical encoding of t as space-separated hex
// bytes.
func (t *Tree) String() string {
	data, err := Marshal(t)
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("% X", data)
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	out := NewTree()
	if t.Len() == 0 {
		return out
	}
	out.entries = make(map[string]Value, len(t.entries))
	for k, v := range t.entries {
		out.entries[k] = Clone(v)
	}
	return out
}
