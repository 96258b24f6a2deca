package internal

// Value header byte: bits 0-3 carry the type tag, bits 4-7 carry the
// metadata byte count minus one.

const (
	TagMask   = 0x0F
	MaxTag    = 0x06
	widthBits = 4
)

// Header packs tag and a metadata width in [1,16] into one byte.
func Header(tag byte, width int) byte {
	return tag&TagMask | byte(width-1)<<widthBits
}

// SplitHeader returns the tag and metadata width carried by h.
func SplitHeader(h byte) (byte, int) {
	return h & TagMask, int(h>>widthBits) + 1
}

// Key header: one byte holding the key's byte length minus one, so key
// lengths 1..256 map to 0..255.

const (
	MinKeyLen = 1
	MaxKeyLen = 256
)

// KeyHeader returns the header byte for a key of n bytes.
// n must be in [MinKeyLen, MaxKeyLen].
func KeyHeader(n int) byte { return byte(n - 1) }

// KeyLen returns the key length announced by a key header byte.
func KeyLen(h byte) int { return int(h) + 1 }
