package abit

// Kind identifies an ABIT value type. It is the low nibble of every value
// header on the wire.
type Kind byte

const (
	KindNull   Kind = 0x00
	KindBool   Kind = 0x01
	KindInt    Kind = 0x02
	KindBlob   Kind = 0x03
	KindString Kind = 0x04
	KindArray  Kind = 0x05
	KindTree   Kind = 0x06
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindBlob:
		return "blob"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindTree:
		return "tree"
	default:
		return "invalid"
	}
}
