package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadValues merges a YAML map of field values with key=value overrides.
// Scalars keep their source text so 007 or 0x20 reach the rules unchanged.
func loadValues(path string, sets []string) (map[string]string, error) {
	values := make(map[string]string)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read values: %w", err)
		}
		raw := make(map[string]yaml.Node)
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode values %s: %w", path, err)
		}
		for k, node := range raw {
			if node.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("decode values %s: field %q must be a scalar", path, k)
			}
			if node.ShortTag() == "!!null" {
				values[k] = ""
				continue
			}
			values[k] = node.Value
		}
	}
	for _, pair := range sets {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected field=value", pair)
		}
		values[strings.TrimSpace(key)] = value
	}
	return values, nil
}
