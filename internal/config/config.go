package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file doesn't exist
var ErrConfigNotFound = errors.New("config file not found")

// DefaultConfigPath returns the default config file path
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".awslaunch.yaml"), nil
}

// NewConfig returns an empty configuration at the newest schema version.
// A run without a config file starts from this; every field falls back to
// its launcher-level default.
func NewConfig() *Config {
	return &Config{Version: schemas[len(schemas)-1].Max}
}

// LoadConfig reads, parses, and validates the config file at the given path.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrConfigNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// LoadOrCreateConfig loads the config file, or returns a fresh empty
// configuration when none exists. The file itself is never written.
func LoadOrCreateConfig(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return NewConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Parse validates raw YAML and returns the normalized configuration. The
// declared version picks the schema revision that checks the document; a
// missing or non-numeric version falls through to the newest revision so
// the rest of the document is still checked and every problem is reported
// together.
func Parse(data []byte) (*Config, error) {
	tree, err := ParseTree(data)
	if err != nil {
		return nil, err
	}
	schema := schemas[len(schemas)-1]
	if v, ok := numberValue(tree["version"]); ok {
		schema, err = SelectSchema(v)
		if err != nil {
			return nil, err
		}
	}
	return Validate(tree, schema)
}

// ParseTree decodes raw YAML into a generic document tree with string keys.
// Account IDs written without quotes decode as integers; their keys are
// rewritten to the digit strings the schemas expect. A syntax error yields
// a MalformedDocumentError, an empty document an empty tree.
func ParseTree(data []byte) (map[string]any, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &MalformedDocumentError{Err: err}
	}
	switch tree := normalizeNode(root).(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return tree, nil
	default:
		return nil, &ValidationError{Violations: []Violation{
			{Path: "(root)", Message: fmt.Sprintf("document must be a mapping, got %s", typeName(tree))},
		}}
	}
}

func normalizeNode(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for key, val := range node {
			node[key] = normalizeNode(val)
		}
		return node
	case map[any]any:
		// yaml.v3 only produces this form when some key is not a string
		out := make(map[string]any, len(node))
		for key, val := range node {
			out[keyString(key)] = normalizeNode(val)
		}
		return out
	case []any:
		for i, val := range node {
			node[i] = normalizeNode(val)
		}
		return node
	}
	return v
}

func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", key)
}
