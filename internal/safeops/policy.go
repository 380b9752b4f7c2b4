package safeops

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// LoadRules parses an HCL policy file into a Ruleset. A failure here is a
// startup error: operators must never run with a silently degraded policy.
//
// File shape:
//
//	restricted_tags           = ["prod", "production", "do-not-delete"]
//	protected_type_substrings = ["rds", "database"]
//
//	min_age {
//	  enabled = true
//	  days    = 7
//	}
//
//	deny {
//	  tag    = "pinned"
//	  reason = "pinned resources are exempt from automated cleanup"
//	}
func LoadRules(path string) (Ruleset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Ruleset{}, fmt.Errorf("failed to read safety policy file: %w", err)
	}

	file, diags := hclparse.NewParser().ParseHCL(content, path)
	if diags.HasErrors() {
		return Ruleset{}, fmt.Errorf("failed to parse safety policy file: %s", diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return Ruleset{}, fmt.Errorf("unexpected policy file body type")
	}

	defaults := DefaultRuleset()
	restrictedTags := defaults.RestrictedTags
	protectedTypes := defaults.ProtectedTypeSubstrings
	minAge := defaults.MinAge
	var extraDeny []DenyRule

	for name, attr := range body.Attributes {
		val, err := evalAttr(attr)
		if err != nil {
			return Ruleset{}, err
		}
		switch name {
		case "restricted_tags":
			restrictedTags, err = stringListValue(val, name)
		case "protected_type_substrings":
			protectedTypes, err = stringListValue(val, name)
		default:
			return Ruleset{}, fmt.Errorf("unknown policy attribute %q", name)
		}
		if err != nil {
			return Ruleset{}, err
		}
	}

	for _, block := range body.Blocks {
		switch block.Type {
		case "min_age":
			parsed, err := parseMinAgeBlock(block)
			if err != nil {
				return Ruleset{}, err
			}
			minAge = parsed
		case "deny":
			rule, err := parseDenyBlock(block)
			if err != nil {
				return Ruleset{}, err
			}
			extraDeny = append(extraDeny, rule)
		default:
			return Ruleset{}, fmt.Errorf("unknown policy block %q", block.Type)
		}
	}

	return newRuleset(restrictedTags, protectedTypes, minAge, extraDeny), nil
}

func parseMinAgeBlock(block *hclsyntax.Block) (MinAgeRule, error) {
	rule := MinAgeRule{Days: 7}
	for name, attr := range block.Body.Attributes {
		val, err := evalAttr(attr)
		if err != nil {
			return rule, err
		}
		switch name {
		case "enabled":
			if val.Type() != cty.Bool {
				return rule, fmt.Errorf("min_age.enabled must be a bool")
			}
			rule.Enabled = val.True()
		case "days":
			if val.Type() != cty.Number {
				return rule, fmt.Errorf("min_age.days must be a number")
			}
			f, _ := val.AsBigFloat().Float64()
			rule.Days = int(f)
		default:
			return rule, fmt.Errorf("unknown min_age attribute %q", name)
		}
	}
	if rule.Days < 0 {
		return rule, fmt.Errorf("min_age.days must not be negative")
	}
	return rule, nil
}

func parseDenyBlock(block *hclsyntax.Block) (DenyRule, error) {
	var rule DenyRule
	for name, attr := range block.Body.Attributes {
		val, err := evalAttr(attr)
		if err != nil {
			return rule, err
		}
		if val.Type() != cty.String {
			return rule, fmt.Errorf("deny.%s must be a string", name)
		}
		switch name {
		case "tag":
			rule.Tag = val.AsString()
		case "type_contains":
			rule.TypeContains = val.AsString()
		case "reason":
			rule.Reason = val.AsString()
		default:
			return rule, fmt.Errorf("unknown deny attribute %q", name)
		}
	}
	if rule.Tag == "" && rule.TypeContains == "" {
		return rule, fmt.Errorf("deny block needs a tag or type_contains matcher")
	}
	return rule, nil
}

func evalAttr(attr *hclsyntax.Attribute) (cty.Value, error) {
	val, diags := attr.Expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to evaluate policy attribute %q: %s", attr.Name, diags.Error())
	}
	return val, nil
}

func stringListValue(val cty.Value, name string) ([]string, error) {
	if !val.Type().IsListType() && !val.Type().IsTupleType() {
		return nil, fmt.Errorf("%s must be a list of strings", name)
	}
	out := make([]string, 0, val.LengthInt())
	iter := val.ElementIterator()
	for iter.Next() {
		_, v := iter.Element()
		if v.Type() != cty.String {
			return nil, fmt.Errorf("%s must contain only strings", name)
		}
		out = append(out, v.AsString())
	}
	return out, nil
}
