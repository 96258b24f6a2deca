package abit

import (
	"bytes"

	intr "github.com/dadrian/abit/internal"
)

// Marshal encodes the document rooted at t. The root is written as the
// bare concatenation of its entries, without a header.
func Marshal(t *Tree) ([]byte, error) {
	buf := intr.GetBuffer()
	defer intr.PutBuffer(buf)
	if err := encodeEntries(buf, t, 0); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// Unmarshal decodes a whole document. Any input that is not exactly the
// canonical encoding of some Tree is rejected with ErrCorruptEncoding.
// Empty input is the empty Tree.
func Unmarshal(data []byte) (*Tree, error) {
	d := &decodeState{data: data}
	return d.readEntries(len(data))
}

// MarshalValue encodes a single value, header included. A Tree passed
// here is encoded as a nested tree, not as a document root.
func MarshalValue(v Value) ([]byte, error) {
	buf := intr.GetBuffer()
	defer intr.PutBuffer(buf)
	if err := encodeValue(buf, v, 0); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// UnmarshalValue decodes a single value that must span all of data.
func UnmarshalValue(data []byte) (Value, error) {
	d := &decodeState{data: data}
	v, err := d.readValue(len(data))
	if err != nil {
		return nil, err
	}
	if d.off != len(data) {
		return nil, corruptAt(d.off, "%d trailing bytes", len(data)-d.off)
	}
	return v, nil
}
