package safeops

import (
	"os"
	"path/filepath"
	"testing"
)

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "safeops.hcl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}
	return path
}

func TestLoadRules(t *testing.T) {
	path := writePolicyFile(t, `
restricted_tags           = ["prod", "keep"]
protected_type_substrings = ["rds"]

min_age {
  enabled = true
  days    = 14
}

deny {
  tag    = "pinned"
  reason = "pinned resources are exempt from automated cleanup"
}

deny {
  type_contains = "kms"
}
`)

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}

	if len(rules.RestrictedTags) != 2 {
		t.Errorf("RestrictedTags = %v, want 2 entries", rules.RestrictedTags)
	}
	if !rules.isRestrictedTagValue("KEEP") {
		t.Error("restricted tag matching should be case-insensitive")
	}
	if rules.isRestrictedTagValue("production") {
		t.Error("policy file should replace the default restricted set, not extend it")
	}
	if len(rules.ProtectedTypeSubstrings) != 1 || rules.ProtectedTypeSubstrings[0] != "rds" {
		t.Errorf("ProtectedTypeSubstrings = %v, want [rds]", rules.ProtectedTypeSubstrings)
	}
	if !rules.MinAge.Enabled || rules.MinAge.Days != 14 {
		t.Errorf("MinAge = %+v, want enabled with 14 days", rules.MinAge)
	}
	if len(rules.ExtraDeny) != 2 {
		t.Fatalf("ExtraDeny = %d rules, want 2", len(rules.ExtraDeny))
	}
	if rules.ExtraDeny[0].Tag != "pinned" || rules.ExtraDeny[0].Reason == "" {
		t.Errorf("first deny rule = %+v, want pinned tag with reason", rules.ExtraDeny[0])
	}
}

func TestLoadRules_DefaultsWhenFileOmitsSections(t *testing.T) {
	path := writePolicyFile(t, `
min_age {
  enabled = true
  days    = 3
}
`)

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}

	// Sections the file does not set keep the compiled-in defaults.
	if !rules.isRestrictedTagValue("production") {
		t.Error("omitted restricted_tags should keep the default set")
	}
	if len(rules.ProtectedTypeSubstrings) != 2 {
		t.Errorf("ProtectedTypeSubstrings = %v, want the default pair", rules.ProtectedTypeSubstrings)
	}
	if !rules.MinAge.Enabled || rules.MinAge.Days != 3 {
		t.Errorf("MinAge = %+v, want enabled with 3 days", rules.MinAge)
	}
}

func TestLoadRules_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed hcl",
			content: `restricted_tags = [`,
		},
		{
			name:    "unknown attribute",
			content: `allow_everything = true`,
		},
		{
			name:    "unknown block",
			content: "escalate {\n  to = \"oncall\"\n}",
		},
		{
			name:    "deny block without matcher",
			content: "deny {\n  reason = \"no matcher\"\n}",
		},
		{
			name:    "non-string restricted tags",
			content: `restricted_tags = [1, 2]`,
		},
		{
			name:    "negative min age",
			content: "min_age {\n  enabled = true\n  days    = -1\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePolicyFile(t, tt.content)
			if _, err := LoadRules(path); err == nil {
				t.Error("LoadRules() expected error, got nil")
			}
		})
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "absent.hcl")); err == nil {
		t.Error("LoadRules() expected error for missing file, got nil")
	}
}
