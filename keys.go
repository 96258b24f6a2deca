package abit

import (
	"cmp"
	"slices"

	intr "github.com/dadrian/abit/internal"
)

// Key length bounds in UTF-8 bytes.
const (
	MinKeyLen = intr.MinKeyLen
	MaxKeyLen = intr.MaxKeyLen
)

// CompareKeys orders keys canonically: shorter keys first, then byte by
// byte. Bytes compare as signed values, so 0x80..0xFF sort before
// 0x00..0x7F; documents written by other ABIT implementations rely on this.
func CompareKeys(a, b string) int {
	if len(a) != len(b) {
		return cmp.Compare(len(a), len(b))
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			return cmp.Compare(int8(a[i]), int8(b[i]))
		}
	}
	return 0
}

// SortKeys sorts keys into canonical order in place.
func SortKeys(keys []string) { slices.SortFunc(keys, CompareKeys) }

// CheckKey reports whether key can be bound into a Tree.
func CheckKey(key string) error {
	if len(key) < MinKeyLen || len(key) > MaxKeyLen {
		return NewError(ErrInvalidKey, "key is %d bytes, must be between %d and %d bytes when encoded with UTF-8",
			len(key), MinKeyLen, MaxKeyLen)
	}
	return nil
}
