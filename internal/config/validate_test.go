package config

import (
	"strings"
	"testing"
)

func mustSchema(t *testing.T, name string) *Schema {
	t.Helper()
	s, ok := SchemaByName(name)
	if !ok {
		t.Fatalf("schema %s not registered", name)
	}
	return s
}

func TestValidateNormalizesEveryField(t *testing.T) {
	tree := map[string]any{
		"version":               0.2,
		"duration_hours":        4,
		"source_profile":        "ops",
		"organizations_profile": "org-audit",
		"roles": map[string]any{
			"123456789012": []any{"Admin", "ReadOnly"},
			"_":            []any{"OrganizationAccountAccessRole"},
		},
		"account_display_names": map[string]any{
			"123456789012": "prod",
		},
	}

	cfg, err := Validate(tree, mustSchema(t, "0.2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Version != 0.2 {
		t.Errorf("expected version 0.2, got %v", cfg.Version)
	}
	if cfg.DurationHours != 4 {
		t.Errorf("expected duration_hours 4, got %d", cfg.DurationHours)
	}
	if cfg.SourceProfile != "ops" {
		t.Errorf("expected source_profile ops, got %s", cfg.SourceProfile)
	}
	if cfg.OrganizationsProfile != "org-audit" {
		t.Errorf("expected organizations_profile org-audit, got %s", cfg.OrganizationsProfile)
	}
	if len(cfg.Roles) != 2 {
		t.Errorf("expected 2 role entries, got %d", len(cfg.Roles))
	}
	if got := cfg.Roles["123456789012"]; len(got) != 2 || got[0] != "Admin" || got[1] != "ReadOnly" {
		t.Errorf("expected ordered role list [Admin ReadOnly], got %v", got)
	}
	if cfg.AccountDisplayNames["123456789012"] != "prod" {
		t.Errorf("expected display name prod, got %s", cfg.AccountDisplayNames["123456789012"])
	}
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	tree := map[string]any{
		"version":        0.2,
		"duration_hours": "two",
		"source_profile": 5,
		"roles": map[string]any{
			"abc":          []any{"Admin"},
			"123456789012": "Admin",
			"_":            []any{"ReadOnly", 7},
		},
		"account_display_names": map[string]any{
			"_": "Everything",
		},
	}

	_, err := Validate(tree, mustSchema(t, "0.2"))
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	validation, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	paths := make(map[string]bool)
	for _, v := range validation.Violations {
		paths[v.Path] = true
	}
	for _, path := range []string{
		"duration_hours",
		"source_profile",
		"roles.abc",
		"roles.123456789012",
		"roles._[1]",
		"account_display_names._",
	} {
		if !paths[path] {
			t.Errorf("expected a violation at %q, got %v", path, validation.Violations)
		}
	}
	if len(validation.Violations) != 6 {
		t.Errorf("expected 6 violations, got %d: %v", len(validation.Violations), validation.Violations)
	}
}

func TestValidateVersionRequired(t *testing.T) {
	_, err := Validate(map[string]any{}, mustSchema(t, "0.2"))
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	validation, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validation.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d: %v", len(validation.Violations), validation.Violations)
	}
	if v := validation.Violations[0]; v.Path != "version" || v.Message != "required field is missing" {
		t.Errorf("unexpected violation: %v", v)
	}
}

func TestValidateVersionOutsideSchemaRange(t *testing.T) {
	// A 0.2 document checked against the 0.1 rules is a range violation, not
	// a type violation.
	tree := map[string]any{"version": 0.2}
	_, err := Validate(tree, mustSchema(t, "0.1"))
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	validation, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validation.Violations) != 1 || validation.Violations[0].Path != "version" {
		t.Fatalf("expected a single version violation, got %v", validation.Violations)
	}
	if !strings.Contains(validation.Violations[0].Message, "accepted range") {
		t.Errorf("expected the message to name the accepted range, got %q", validation.Violations[0].Message)
	}
}

func TestValidateUnknownFieldsTolerated(t *testing.T) {
	// organizations_profile only exists in the 0.2 revision; under 0.1 rules
	// it is an unknown field like any other and must not fail validation or
	// leak into the normalized config.
	tree := map[string]any{
		"version":               0.1,
		"role_session_name":     "deploy",
		"organizations_profile": "org-audit",
	}

	cfg, err := Validate(tree, mustSchema(t, "0.1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OrganizationsProfile != "" {
		t.Errorf("expected organizations_profile to stay unset under the 0.1 schema, got %q", cfg.OrganizationsProfile)
	}
}

func TestValidateRolesMustBeMapping(t *testing.T) {
	tree := map[string]any{
		"version": 0.1,
		"roles":   []any{"Admin"},
	}
	_, err := Validate(tree, mustSchema(t, "0.1"))
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	validation, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validation.Violations) != 1 || validation.Violations[0].Path != "roles" {
		t.Fatalf("expected a single roles violation, got %v", validation.Violations)
	}
	if !strings.Contains(validation.Violations[0].Message, "got list") {
		t.Errorf("expected the message to name the offending type, got %q", validation.Violations[0].Message)
	}
}

func TestValidateRoleKeyMessageNamesWildcard(t *testing.T) {
	tree := map[string]any{
		"version": 0.1,
		"roles":   map[string]any{"prod": []any{"Admin"}},
	}
	_, err := Validate(tree, mustSchema(t, "0.1"))
	validation, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(validation.Violations[0].Message, `"_"`) {
		t.Errorf("expected the message to mention the wildcard key, got %q", validation.Violations[0].Message)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	single := &ValidationError{Violations: []Violation{
		{Path: "version", Message: "required field is missing"},
	}}
	if got := single.Error(); got != "invalid config: version: required field is missing" {
		t.Errorf("unexpected single-violation message: %q", got)
	}

	multi := &ValidationError{Violations: []Violation{
		{Path: "version", Message: "required field is missing"},
		{Path: "roles.abc", Message: "bad key"},
	}}
	msg := multi.Error()
	if !strings.HasPrefix(msg, "invalid config (2 problems):") {
		t.Errorf("expected a problem count header, got %q", msg)
	}
	if !strings.Contains(msg, "\n  roles.abc: bad key") {
		t.Errorf("expected indented violation lines, got %q", msg)
	}
}
