package abit

import "github.com/zeebo/blake3"

// Digest returns the BLAKE3-256 hash of the canonical encoding of t. Equal
// trees always have equal digests.
func Digest(t *Tree) ([32]byte, error) {
	data, err := Marshal(t)
	if err != nil {
		return [32]byte{}, err
	}
	return blake3.Sum256(data), nil
}
