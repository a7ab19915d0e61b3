package section

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	return FromYAML(data)
}

// FromYAML parses YAML data into a configuration tree. Mappings become child
// sections, sequence items become children keyed by their index and scalars
// become leaf values. A null scalar leaves the section without a value.
func FromYAML(data []byte) (*Node, error) {
	var doc yaml.Node

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration YAML: %w", err)
	}

	root := NewRoot()
	if len(doc.Content) == 0 {
		return root, nil
	}

	if err := fill(root, doc.Content[0]); err != nil {
		return nil, err
	}

	return root, nil
}

func fill(dst *Node, src *yaml.Node) error {
	for src.Kind == yaml.AliasNode {
		src = src.Alias
	}

	switch src.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(src.Content); i += 2 {
			key := src.Content[i]
			if key.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: configuration keys must be scalars", key.Line)
			}

			if err := fill(dst.ensure([]string{key.Value}), src.Content[i+1]); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for i, item := range src.Content {
			if err := fill(dst.ensure([]string{strconv.Itoa(i)}), item); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		if src.ShortTag() != "!!null" {
			dst.value, dst.hasValue = src.Value, true
		}
	default:
		return fmt.Errorf("line %d: unsupported YAML node kind %d", src.Line, src.Kind)
	}

	return nil
}
