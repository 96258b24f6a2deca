package abit

import (
	"bytes"
	"fmt"
	"io"

	intr "github.com/dadrian/abit/internal"
)

// Encoder writes ABIT documents to an io.Writer.
type Encoder struct {
	w io.Writer
}

// NewEncoder creates a new encoder writing to w.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Encode writes the canonical encoding of the document rooted at t.
// Nothing is written if encoding fails.
func (e *Encoder) Encode(t *Tree) error {
	buf := intr.GetBuffer()
	defer intr.PutBuffer(buf)
	if err := encodeEntries(buf, t, 0); err != nil {
		return err
	}
	_, err := e.w.Write(buf.Bytes())
	return err
}

// EncodeValue writes one value with its header.
func (e *Encoder) EncodeValue(v Value) error {
	buf := intr.GetBuffer()
	defer intr.PutBuffer(buf)
	if err := encodeValue(buf, v, 0); err != nil {
		return err
	}
	_, err := e.w.Write(buf.Bytes())
	return err
}

// encodeValue appends the header and payload for v. depth counts the
// containers enclosing v, the same way the decoder counts them.
func encodeValue(buf *bytes.Buffer, v Value, depth int) error {
	switch v := normalize(v).(type) {
	case Null:
		buf.WriteByte(intr.Header(byte(KindNull), 1))
	case Bool:
		h := intr.Header(byte(KindBool), 1)
		if v {
			h |= 0x10
		}
		buf.WriteByte(h)
	case Int:
		var hdr [1 + intr.MaxIntWidth]byte
		buf.Write(intr.AppendInt(hdr[:0], byte(KindInt), int64(v)))
	case Blob:
		if err := writeLenHeader(buf, KindBlob, len(v)); err != nil {
			return err
		}
		buf.Write(v)
	case String:
		if err := writeLenHeader(buf, KindString, len(v)); err != nil {
			return err
		}
		buf.WriteString(string(v))
	case *Array:
		return encodeNested(buf, KindArray, depth, func(body *bytes.Buffer) error {
			for _, elem := range v.values {
				if err := encodeValue(body, elem, depth+1); err != nil {
					return err
				}
			}
			return nil
		})
	case *Tree:
		return encodeNested(buf, KindTree, depth, func(body *bytes.Buffer) error {
			return encodeEntries(body, v, depth+1)
		})
	default:
		panic(fmt.Sprintf("abit: unexpected value type %T", v))
	}
	return nil
}

// encodeEntries appends the body of t: every entry as key header, key
// bytes and value, in canonical key order.
func encodeEntries(buf *bytes.Buffer, t *Tree, depth int) error {
	for _, key := range t.Keys() {
		buf.WriteByte(intr.KeyHeader(len(key)))
		buf.WriteString(key)
		if err := encodeValue(buf, t.entries[key], depth); err != nil {
			return err
		}
	}
	return nil
}

// encodeNested buffers a container body to learn its length, then appends
// header and body. Containers nested more than MaxDepth deep are refused,
// since the decoder would reject them.
func encodeNested(buf *bytes.Buffer, kind Kind, depth int, writeBody func(*bytes.Buffer) error) error {
	if depth >= MaxDepth {
		return NewError(ErrValueTooLarge, "%v nested more than %d deep", kind, MaxDepth)
	}
	body := intr.GetBuffer()
	defer intr.PutBuffer(body)
	if err := writeBody(body); err != nil {
		return err
	}
	if err := writeLenHeader(buf, kind, body.Len()); err != nil {
		return err
	}
	buf.Write(body.Bytes())
	return nil
}

func writeLenHeader(buf *bytes.Buffer, kind Kind, n int) error {
	var hdr [1 + intr.MaxLenWidth]byte
	b, err := intr.AppendLen(hdr[:0], byte(kind), n)
	if err != nil {
		return WrapError(ErrValueTooLarge, err, "%v of %d bytes exceeds %d", kind, n, intr.MaxLen)
	}
	buf.Write(b)
	return nil
}
