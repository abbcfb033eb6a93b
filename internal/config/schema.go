package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Schema is the external schema descriptor. It names the columns to remove
// before the train/test split.
type Schema struct {
	DropColumns []string `yaml:"drop_columns"`
}

// LoadSchema reads the schema descriptor from a YAML file. The root element
// must be a mapping.
func LoadSchema(path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parse schema file %s: %w", path, err)
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema file %s must contain a mapping at the root", path)
	}

	var s Schema
	if err := root.Content[0].Decode(&s); err != nil {
		return nil, fmt.Errorf("decode schema file %s: %w", path, err)
	}
	return &s, nil
}
