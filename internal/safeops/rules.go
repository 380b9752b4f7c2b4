package safeops

import (
	"fmt"
	"strings"
)

// Ruleset holds the symbolic deny rules the interceptor enforces. The
// compiled-in defaults apply when no policy file is configured.
type Ruleset struct {
	RestrictedTags          []string
	ProtectedTypeSubstrings []string
	MinAge                  MinAgeRule
	ExtraDeny               []DenyRule

	restricted map[string]struct{}
}

// MinAgeRule guards freshly created resources. It exists in the rule set but
// is disabled by default; enabling it is a deliberate configuration choice.
type MinAgeRule struct {
	Enabled bool
	Days    int
}

// DenyRule is an additional policy-file deny matcher: either an exact tag
// key or a resource-type substring, with a custom reason.
type DenyRule struct {
	Tag          string
	TypeContains string
	Reason       string
}

func (r DenyRule) matches(res Resource) (bool, string) {
	if r.Tag != "" {
		for k := range res.Tags {
			if strings.EqualFold(strings.TrimSpace(k), r.Tag) {
				return true, r.reasonOr(fmt.Sprintf("resource carries denied tag %q", k))
			}
		}
	}
	if r.TypeContains != "" && strings.Contains(strings.ToLower(res.ResourceType), strings.ToLower(r.TypeContains)) {
		return true, r.reasonOr(fmt.Sprintf("resource type %q matches deny rule %q", res.ResourceType, r.TypeContains))
	}
	return false, ""
}

func (r DenyRule) reasonOr(fallback string) string {
	if r.Reason != "" {
		return r.Reason
	}
	return fallback
}

// DefaultRuleset returns the compiled-in rules: the restricted tag set, the
// protected database types, and the minimum-age rule switched off.
func DefaultRuleset() Ruleset {
	return newRuleset(
		[]string{"prod", "production", "stable", "critical", "database", "do-not-delete"},
		[]string{"rds", "database"},
		MinAgeRule{Enabled: false, Days: 7},
		nil,
	)
}

func newRuleset(restrictedTags, protectedTypes []string, minAge MinAgeRule, extra []DenyRule) Ruleset {
	rs := Ruleset{
		RestrictedTags: restrictedTags,
		MinAge:         minAge,
		ExtraDeny:      extra,
		restricted:     make(map[string]struct{}, len(restrictedTags)),
	}
	for _, t := range restrictedTags {
		rs.restricted[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	for _, s := range protectedTypes {
		rs.ProtectedTypeSubstrings = append(rs.ProtectedTypeSubstrings, strings.ToLower(strings.TrimSpace(s)))
	}
	return rs
}

// WithMinAge returns a copy of the ruleset with the minimum-age rule set
func (rs Ruleset) WithMinAge(enabled bool, days int) Ruleset {
	rs.MinAge = MinAgeRule{Enabled: enabled, Days: days}
	return rs
}

func (rs Ruleset) isRestrictedTagValue(s string) bool {
	_, ok := rs.restricted[strings.ToLower(strings.TrimSpace(s))]
	return ok
}
