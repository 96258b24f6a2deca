package internal

import "errors"

// Minimal-width two's-complement integers, little-endian.
//
// The same routine sizes integer values and payload lengths. Lengths are
// never negative, so the signed rule only shows up for them as an extra
// 0x00 byte whenever the top byte would otherwise have its sign bit set:
// 127 packs into one byte, 128 needs two (0x80 0x00).

const (
	MaxIntWidth = 8 // widest integer value
	MaxLenWidth = 4 // widest payload length
	MaxLen      = 1<<31 - 1
)

var errLengthOverflow = errors.New("length out of range")

// SizeOfInt returns the smallest width in [1,8] that reproduces v under
// sign extension. A leading 0x00 byte is dropped only when the next byte
// has its sign bit clear, a leading 0xFF only when the next byte has it set.
func SizeOfInt(v int64) int {
	w := MaxIntWidth
	for w > 1 {
		top := byte(v >> ((w - 1) * 8))
		next := byte(v >> ((w - 2) * 8))
		if (top == 0x00 && next&0x80 == 0) || (top == 0xFF && next&0x80 != 0) {
			w--
			continue
		}
		break
	}
	return w
}

// EncodeInt writes the minimal encoding of v into dst and returns the
// number of bytes written. dst must have length >= SizeOfInt(v).
func EncodeInt(dst []byte, v int64) int {
	w := SizeOfInt(v)
	for i := 0; i < w; i++ {
		dst[i] = byte(v >> (i * 8))
	}
	return w
}

// DecodeInt reads len(src) little-endian bytes and sign-extends them from
// the top byte's sign bit. len(src) must be in [1,8].
func DecodeInt(src []byte) int64 {
	var u uint64
	for i := len(src) - 1; i >= 0; i-- {
		u = u<<8 | uint64(src[i])
	}
	shift := 64 - 8*len(src)
	return int64(u<<shift) >> shift
}

// AppendInt appends a header carrying tag followed by the minimal
// encoding of v.
func AppendInt(dst []byte, tag byte, v int64) []byte {
	var b [MaxIntWidth]byte
	n := EncodeInt(b[:], v)
	dst = append(dst, Header(tag, n))
	return append(dst, b[:n]...)
}

// AppendLen is AppendInt for payload lengths. It fails when n cannot be
// carried in MaxLenWidth bytes.
func AppendLen(dst []byte, tag byte, n int) ([]byte, error) {
	if n < 0 || n > MaxLen {
		return dst, errLengthOverflow
	}
	return AppendInt(dst, tag, int64(n)), nil
}
