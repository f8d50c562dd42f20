package config

import (
	"fmt"
	"sort"
	"strings"
)

// Violation is one structural problem at a path within the document, e.g.
// "roles.abc". Validation reports every violation it finds, never only the
// first.
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string { return v.Path + ": " + v.Message }

// ValidationError carries every violation found in a single validation pass.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return "invalid config: " + e.Violations[0].String()
	}
	lines := make([]string, 0, len(e.Violations)+1)
	lines = append(lines, fmt.Sprintf("invalid config (%d problems):", len(e.Violations)))
	for _, v := range e.Violations {
		lines = append(lines, "  "+v.String())
	}
	return strings.Join(lines, "\n")
}

// UnsupportedVersionError reports a declared version that no known schema
// revision accepts.
type UnsupportedVersionError struct {
	Version float64
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported config version %v (known schemas accept %v through %v)",
		e.Version, schemas[0].Min, schemas[len(schemas)-1].Max)
}

// MalformedDocumentError reports input that could not be parsed into a
// document tree at all. It precedes schema validation; no partial
// configuration is produced.
type MalformedDocumentError struct {
	Err error
}

func (e *MalformedDocumentError) Error() string {
	return "malformed config document: " + e.Err.Error()
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// Top-level fields in document order, so diagnostics come out stable.
var fieldOrder = []string{
	"version",
	"duration_hours",
	"source_profile",
	"organizations_profile",
	"roles",
	"account_display_names",
}

// Validate checks the document tree against one schema revision and returns
// the normalized configuration. It is a pure function of its inputs and
// collects every violation before reporting, so a user gets complete
// diagnostics in one pass.
//
// Fields the schema does not declare are tolerated and left out of the
// normalized value: neither shipped schema forbids additional properties, and
// the tool has historically accepted configs carrying extra keys.
func Validate(tree map[string]any, schema *Schema) (*Config, error) {
	var violations []Violation
	add := func(path, format string, args ...any) {
		violations = append(violations, Violation{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	cfg := &Config{}
	for _, name := range fieldOrder {
		rule, declared := schema.fields[name]
		if !declared {
			continue
		}
		raw, present := tree[name]
		if !present {
			if rule.required {
				add(name, "required field is missing")
			}
			continue
		}

		switch rule.kind {
		case kindNumber:
			n, ok := numberValue(raw)
			if !ok {
				add(name, "must be a number, got %s", typeName(raw))
				continue
			}
			if name == "version" && !schema.Accepts(n) {
				add(name, "value %v is outside the %s schema's accepted range [%v, %v]",
					n, schema.Name, schema.Min, schema.Max)
				continue
			}
			cfg.Version = n

		case kindInteger:
			n, ok := intValue(raw)
			if !ok {
				add(name, "must be an integer, got %s", typeName(raw))
				continue
			}
			cfg.DurationHours = n

		case kindString:
			s, ok := raw.(string)
			if !ok {
				add(name, "must be a string, got %s", typeName(raw))
				continue
			}
			switch name {
			case "source_profile":
				cfg.SourceProfile = s
			case "organizations_profile":
				cfg.OrganizationsProfile = s
			}

		case kindRoleMap:
			cfg.Roles = validateRoleMap(name, raw, rule, add)

		case kindNameMap:
			cfg.AccountDisplayNames = validateNameMap(name, raw, rule, add)
		}
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return cfg, nil
}

func validateRoleMap(name string, raw any, rule fieldRule, add func(path, format string, args ...any)) map[string][]string {
	m, ok := raw.(map[string]any)
	if !ok {
		add(name, "must be a mapping of account IDs to role lists, got %s", typeName(raw))
		return nil
	}
	out := make(map[string][]string, len(m))
	for _, key := range sortedKeys(m) {
		path := name + "." + key
		if !rule.keys.MatchString(key) {
			add(path, "key must be an account ID (digits only) or the wildcard %q", WildcardKey)
			continue
		}
		list, ok := m[key].([]any)
		if !ok {
			add(path, "must be a list of role names, got %s", typeName(m[key]))
			continue
		}
		roles := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				add(fmt.Sprintf("%s[%d]", path, i), "role name must be a string, got %s", typeName(item))
				continue
			}
			roles = append(roles, s)
		}
		out[key] = roles
	}
	return out
}

func validateNameMap(name string, raw any, rule fieldRule, add func(path, format string, args ...any)) map[string]string {
	m, ok := raw.(map[string]any)
	if !ok {
		add(name, "must be a mapping of account IDs to display names, got %s", typeName(raw))
		return nil
	}
	out := make(map[string]string, len(m))
	for _, key := range sortedKeys(m) {
		path := name + "." + key
		if !rule.keys.MatchString(key) {
			add(path, "key must be an account ID (digits only)")
			continue
		}
		s, ok := m[key].(string)
		if !ok {
			add(path, "display name must be a string, got %s", typeName(m[key]))
			continue
		}
		out[key] = s
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int, int64:
		return "integer"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	}
	return fmt.Sprintf("%T", v)
}
