package textdoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"

	"github.com/dadrian/abit"
)

// ToJSON renders t as a JSON object. Object keys come out in the order
// encoding/json sorts map keys.
func ToJSON(t *abit.Tree, blobInlineThreshold int) ([]byte, error) {
	return ToJSONIndent(t, blobInlineThreshold, "")
}

// ToJSONIndent is ToJSON with each nesting level indented by indent. An
// empty indent produces compact output.
func ToJSONIndent(t *abit.Tree, blobInlineThreshold int, indent string) ([]byte, error) {
	doc, err := ToText(t, blobInlineThreshold)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("textdoc: writing JSON: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// FromJSON parses a JSON object into a Tree. Comments and trailing commas
// (JSONC) are accepted. Numbers must be integers.
func FromJSON(data []byte, binaryFields KeyMatcher) (*abit.Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("textdoc: parsing JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("textdoc: parsing JSON: trailing data after document")
	}
	return rootTree(doc, binaryFields)
}

func rootTree(doc any, binaryFields KeyMatcher) (*abit.Tree, error) {
	if _, ok := doc.(map[string]any); !ok {
		return nil, abit.NewError(abit.ErrUnsupportedInputType, "document root must be an object, have %T", doc)
	}
	v, err := FromText(doc, binaryFields)
	if err != nil {
		return nil, err
	}
	return abit.AsTree(v)
}
