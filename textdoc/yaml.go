package textdoc

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dadrian/abit"
)

// FromYAML parses a YAML mapping into a Tree. An empty document is an
// empty Tree.
func FromYAML(data []byte, binaryFields KeyMatcher) (*abit.Tree, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("textdoc: parsing YAML: %w", err)
	}
	if doc == nil {
		return abit.NewTree(), nil
	}
	return rootTree(doc, binaryFields)
}
