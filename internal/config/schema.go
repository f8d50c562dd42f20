package config

import "regexp"

// WildcardKey is the roles key that matches any account without an explicit
// entry of its own.
const WildcardKey = "_"

var (
	roleKeyPattern    = regexp.MustCompile(`^([0-9]+|_)$`)
	accountKeyPattern = regexp.MustCompile(`^[0-9]+$`)
)

// IsAccountID reports whether s looks like an AWS account ID (digits only).
func IsAccountID(s string) bool {
	return accountKeyPattern.MatchString(s)
}

type fieldKind int

const (
	kindNumber fieldKind = iota
	kindInteger
	kindString
	kindRoleMap
	kindNameMap
)

type fieldRule struct {
	kind     fieldKind
	required bool
	keys     *regexp.Regexp
}

// Schema is one immutable revision of the configuration format: the inclusive
// version range it accepts plus a rule for every field it declares. Future
// revisions are added as new values; existing ones are never modified.
type Schema struct {
	Name string  // revision label, e.g. "0.2"
	Min  float64 // lowest accepted document version, inclusive
	Max  float64 // highest accepted document version, inclusive

	fields map[string]fieldRule
}

// The 0.2 revision widens the accepted version range to cover 0.1 documents
// and adds organizations_profile; it is otherwise identical to 0.1. These
// mirror the JSON Schema artifacts under schema/.
var (
	schemaV01 = &Schema{
		Name: "0.1",
		Min:  0.1,
		Max:  0.1,
		fields: map[string]fieldRule{
			"version":               {kind: kindNumber, required: true},
			"duration_hours":        {kind: kindInteger},
			"source_profile":        {kind: kindString},
			"roles":                 {kind: kindRoleMap, keys: roleKeyPattern},
			"account_display_names": {kind: kindNameMap, keys: accountKeyPattern},
		},
	}

	schemaV02 = &Schema{
		Name: "0.2",
		Min:  0.1,
		Max:  0.2,
		fields: map[string]fieldRule{
			"version":               {kind: kindNumber, required: true},
			"duration_hours":        {kind: kindInteger},
			"source_profile":        {kind: kindString},
			"organizations_profile": {kind: kindString},
			"roles":                 {kind: kindRoleMap, keys: roleKeyPattern},
			"account_display_names": {kind: kindNameMap, keys: accountKeyPattern},
		},
	}

	// ordered oldest to newest
	schemas = []*Schema{schemaV01, schemaV02}
)

// Schemas returns every known schema revision, oldest first.
func Schemas() []*Schema {
	out := make([]*Schema, len(schemas))
	copy(out, schemas)
	return out
}

// SchemaByName returns the schema revision with the given label.
func SchemaByName(name string) (*Schema, bool) {
	for _, s := range schemas {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// SelectSchema returns the newest schema revision whose accepted version
// range contains v. A document declaring version 0.1 therefore validates
// under the 0.2 rules, which accept 0.1 for backward compatibility. When no
// revision accepts v, an UnsupportedVersionError carrying the offending value
// is returned.
func SelectSchema(v float64) (*Schema, error) {
	for i := len(schemas) - 1; i >= 0; i-- {
		if schemas[i].Accepts(v) {
			return schemas[i], nil
		}
	}
	return nil, &UnsupportedVersionError{Version: v}
}

// Accepts reports whether v falls within the schema's version range.
func (s *Schema) Accepts(v float64) bool {
	return v >= s.Min && v <= s.Max
}

func (s *Schema) declares(field string) bool {
	_, ok := s.fields[field]
	return ok
}
