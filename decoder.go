package abit

import (
	"fmt"
	"io"

	intr "github.com/dadrian/abit/internal"
)

// MaxDepth bounds how deeply arrays and trees may nest inside a decoded
// document. The document root is depth 0.
const MaxDepth = 512

// Decoder reads ABIT documents from an io.Reader. ABIT has no framing, so
// a document spans the whole input.
type Decoder struct {
	r io.Reader
}

// NewDecoder creates a new decoder reading from r.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{r: r} }

// Decode reads r to EOF and decodes it as one document.
func (d *Decoder) Decode() (*Tree, error) {
	data, err := io.ReadAll(d.r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// decodeState walks one input buffer. off only moves forward and never
// passes the end bound handed to the current read.
type decodeState struct {
	data  []byte
	off   int
	depth int
}

// header returns the header byte at the current offset.
func (d *decodeState) header(end int, what string) (byte, error) {
	if d.off >= end {
		return 0, corruptAt(d.off, "truncated %s", what)
	}
	return d.data[d.off], nil
}

func (d *decodeState) readValue(end int) (Value, error) {
	start := d.off
	h, err := d.header(end, "value header")
	if err != nil {
		return nil, err
	}
	tag, _ := intr.SplitHeader(h)
	if tag > intr.MaxTag {
		return nil, corruptAt(start, "invalid type tag %d", tag)
	}
	switch Kind(tag) {
	case KindNull:
		if h != 0x00 {
			return nil, corruptAt(start, "byte %#02x is not a null", h)
		}
		d.off++
		return Null{}, nil
	case KindBool:
		d.off++
		switch h {
		case 0x01:
			return Bool(false), nil
		case 0x11:
			return Bool(true), nil
		default:
			return nil, corruptAt(start, "byte %#02x is not a boolean", h)
		}
	case KindInt:
		v, err := d.readInt(end, intr.MaxIntWidth)
		if err != nil {
			return nil, err
		}
		return Int(v), nil
	case KindBlob:
		p, err := d.readPayload(end)
		if err != nil {
			return nil, err
		}
		return NewBlob(p), nil
	case KindString:
		p, err := d.readPayload(end)
		if err != nil {
			return nil, err
		}
		return String(p), nil
	case KindArray:
		return d.readArray(end)
	case KindTree:
		bodyEnd, err := d.enter(end)
		if err != nil {
			return nil, err
		}
		defer d.leave()
		return d.readEntries(bodyEnd)
	default:
		panic(fmt.Sprintf("abit: unhandled type tag %d", tag))
	}
}

// readInt reads a header and a little-endian two's-complement integer of
// at most maxWidth bytes.
func (d *decodeState) readInt(end, maxWidth int) (int64, error) {
	start := d.off
	_, width := intr.SplitHeader(d.data[d.off])
	if width > maxWidth {
		return 0, corruptAt(start, "invalid size %d, at most %d", width, maxWidth)
	}
	if end-d.off-1 < width {
		return 0, corruptAt(start, "truncated integer")
	}
	v := intr.DecodeInt(d.data[d.off+1 : d.off+1+width])
	if intr.SizeOfInt(v) != width {
		return 0, corruptAt(start, "non-minimal integer encoding")
	}
	d.off += 1 + width
	return v, nil
}

// readLen reads a length header and checks that the payload it announces
// fits before end. The payload itself is left unread.
func (d *decodeState) readLen(end int) (int, error) {
	start := d.off
	n, err := d.readInt(end, intr.MaxLenWidth)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, corruptAt(start, "negative length %d", n)
	}
	if int64(end-d.off) < n {
		return 0, corruptAt(start, "truncated payload: need %d bytes, have %d", n, end-d.off)
	}
	return int(n), nil
}

// readPayload returns the payload of a blob or string. The slice aliases
// the input.
func (d *decodeState) readPayload(end int) ([]byte, error) {
	n, err := d.readLen(end)
	if err != nil {
		return nil, err
	}
	p := d.data[d.off : d.off+n]
	d.off += n
	return p, nil
}

// enter reads a container length and returns where its body ends.
func (d *decodeState) enter(end int) (int, error) {
	start := d.off
	if d.depth >= MaxDepth {
		return 0, corruptAt(start, "nesting too deep, limit %d", MaxDepth)
	}
	n, err := d.readLen(end)
	if err != nil {
		return 0, err
	}
	d.depth++
	return d.off + n, nil
}

func (d *decodeState) leave() { d.depth-- }

func (d *decodeState) readArray(end int) (*Array, error) {
	bodyEnd, err := d.enter(end)
	if err != nil {
		return nil, err
	}
	defer d.leave()
	a := &Array{}
	for d.off < bodyEnd {
		v, err := d.readValue(bodyEnd)
		if err != nil {
			return nil, err
		}
		a.values = append(a.values, v)
	}
	return a, nil
}

// readEntries reads tree entries until end. Each key must sort strictly
// after the one before it, which rules out duplicates and any ordering
// other than the canonical one.
func (d *decodeState) readEntries(end int) (*Tree, error) {
	t := &Tree{entries: make(map[string]Value)}
	var prev string
	for d.off < end {
		start := d.off
		n := intr.KeyLen(d.data[d.off])
		if end-d.off-1 < n {
			return nil, corruptAt(start, "truncated key")
		}
		key := string(d.data[d.off+1 : d.off+1+n])
		if len(t.entries) > 0 && CompareKeys(key, prev) <= 0 {
			return nil, corruptAt(start, "invalid key order or identical keys")
		}
		d.off += 1 + n
		v, err := d.readValue(end)
		if err != nil {
			return nil, err
		}
		t.entries[key] = v
		prev = key
	}
	return t, nil
}
