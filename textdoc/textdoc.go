// Package textdoc converts between ABIT values and the generic text
// document model produced by encoding/json and YAML decoders: nil, bool,
// integers, strings, []any and map[string]any.
//
// Blobs have no text counterpart, so they travel as multibase strings:
// base58btc for short blobs and base64url for long ones. On the way back a
// caller-supplied KeyMatcher says which keys hold such strings.
package textdoc

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"

	"github.com/multiformats/go-multibase"

	"github.com/dadrian/abit"
)

// DefaultBlobInlineThreshold is the largest blob, in bytes, written with
// the denser base58btc text encoding.
const DefaultBlobInlineThreshold = 32

// KeyMatcher selects the keys whose string values are multibase blobs.
// *regexp.Regexp implements it; see MatchKeys.
type KeyMatcher interface {
	MatchString(s string) bool
}

// MatchKeys compiles pattern so that it must match a whole key.
func MatchKeys(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)$`)
}

// ToText converts v into the generic text document model. Trees become
// map[string]any, arrays []any and integers int64. Blobs longer than
// blobInlineThreshold bytes are base64url multibase strings, shorter ones
// base58btc.
func ToText(v abit.Value, blobInlineThreshold int) (any, error) {
	switch v := v.(type) {
	case nil, abit.Null:
		return nil, nil
	case abit.Bool:
		return bool(v), nil
	case abit.Int:
		return int64(v), nil
	case abit.Blob:
		return EncodeBlob(v, blobInlineThreshold)
	case abit.String:
		return string(v), nil
	case *abit.Array:
		out := make([]any, 0, v.Len())
		for _, elem := range v.All() {
			x, err := ToText(elem, blobInlineThreshold)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return out, nil
	case *abit.Tree:
		out := make(map[string]any, v.Len())
		for key, elem := range v.All() {
			x, err := ToText(elem, blobInlineThreshold)
			if err != nil {
				return nil, err
			}
			out[key] = x
		}
		return out, nil
	default:
		panic(fmt.Sprintf("textdoc: unexpected value type %T", v))
	}
}

// EncodeBlob returns the multibase text form of b.
func EncodeBlob(b []byte, blobInlineThreshold int) (string, error) {
	var enc multibase.Encoding = multibase.Base58BTC
	if len(b) > blobInlineThreshold {
		enc = multibase.Base64url
	}
	return multibase.Encode(enc, b)
}

// DecodeBlob parses a multibase string in any encoding the multibase
// library knows.
func DecodeBlob(s string) ([]byte, error) {
	// A bare prefix is an empty blob; some base decoders refuse empty
	// input.
	if len(s) == 1 {
		if _, ok := multibase.EncodingToStr[multibase.Encoding(s[0])]; ok {
			return []byte{}, nil
		}
	}
	_, b, err := multibase.Decode(s)
	return b, err
}

// FromText converts a generic text document node into an ABIT value.
// Strings stored under a key matched by binaryFields, or inside an array
// stored under such a key, are decoded as multibase blobs. A nil
// binaryFields matches nothing.
func FromText(doc any, binaryFields KeyMatcher) (abit.Value, error) {
	c := converter{binary: binaryFields}
	return c.value(doc, false)
}

type converter struct {
	binary KeyMatcher
}

func (c converter) isBinary(key string) bool {
	return c.binary != nil && c.binary.MatchString(key)
}

// value converts node; blobs reports whether strings at this position are
// multibase blobs.
func (c converter) value(node any, blobs bool) (abit.Value, error) {
	switch n := node.(type) {
	case nil:
		return abit.Null{}, nil
	case bool:
		return abit.Bool(n), nil
	case int:
		return abit.Int(n), nil
	case int8:
		return abit.Int(n), nil
	case int16:
		return abit.Int(n), nil
	case int32:
		return abit.Int(n), nil
	case int64:
		return abit.Int(n), nil
	case uint:
		return fromUint(uint64(n))
	case uint8:
		return abit.Int(n), nil
	case uint16:
		return abit.Int(n), nil
	case uint32:
		return abit.Int(n), nil
	case uint64:
		return fromUint(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return nil, abit.WrapError(abit.ErrUnsupportedInputType, err, "number %s is not a 64-bit integer", n)
		}
		return abit.Int(i), nil
	case float32, float64:
		return nil, abit.NewError(abit.ErrUnsupportedInputType, "floating point number %v", n)
	case string:
		if !blobs {
			return abit.String(n), nil
		}
		b, err := DecodeBlob(n)
		if err != nil {
			return nil, abit.WrapError(abit.ErrUnsupportedInputType, err, "binary field is not multibase text")
		}
		return abit.Blob(b), nil
	case []any:
		a := abit.NewArray()
		for _, elem := range n {
			v, err := c.value(elem, blobs)
			if err != nil {
				return nil, err
			}
			if err := a.Add(v); err != nil {
				return nil, err
			}
		}
		return a, nil
	case map[string]any:
		t := abit.NewTree()
		for key, elem := range n {
			v, err := c.value(elem, c.isBinary(key))
			if err != nil {
				return nil, err
			}
			if err := t.Put(key, v); err != nil {
				return nil, err
			}
		}
		return t, nil
	default:
		return nil, abit.NewError(abit.ErrUnsupportedInputType, "unsupported object type %T in text document", node)
	}
}

func fromUint(u uint64) (abit.Value, error) {
	if u > math.MaxInt64 {
		return nil, abit.NewError(abit.ErrUnsupportedInputType, "integer %d overflows int64", u)
	}
	return abit.Int(u), nil
}
