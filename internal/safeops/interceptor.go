package safeops

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wastegate/wastegate/internal/pkg/logger"
)

// Resource is the minimal view of a cloud resource the interceptor needs.
// It is assembled by callers from scan records or remediation actions.
type Resource struct {
	ResourceID   string            `json:"resource_id"`
	ResourceType string            `json:"resource_type"`
	Tags         map[string]string `json:"tags,omitempty"`
	CreatedAt    *time.Time        `json:"created_at,omitempty"`
	AgeDays      *float64          `json:"age_days,omitempty"`
}

// Verdict is the outcome of a symbolic safety check. Reason is empty when
// the resource is safe to act on.
type Verdict struct {
	Safe   bool   `json:"is_safe"`
	Reason string `json:"reason,omitempty"`
}

// Interceptor applies symbolic deny rules to candidate remediation targets.
// Its verdict overrides any upstream confidence or AI-derived signal: a deny
// here blocks the action no matter how certain the classifier was.
type Interceptor struct {
	rules  Ruleset
	logger *logger.Logger
}

// NewInterceptor creates an interceptor with the given ruleset
func NewInterceptor(rules Ruleset, log *logger.Logger) *Interceptor {
	return &Interceptor{rules: rules, logger: log}
}

// Rules returns the active ruleset
func (i *Interceptor) Rules() Ruleset {
	return i.rules
}

// Validate checks one resource against the deny rules. Checks run in a fixed
// order: restricted tags, protected resource types, extra deny rules, then
// the minimum-age rule when enabled.
func (i *Interceptor) Validate(res Resource) Verdict {
	if v := i.checkRestrictedTags(res); !v.Safe {
		i.logDenial(res, v.Reason)
		return v
	}
	if v := i.checkProtectedType(res); !v.Safe {
		i.logDenial(res, v.Reason)
		return v
	}
	if v := i.checkExtraDenyRules(res); !v.Safe {
		i.logDenial(res, v.Reason)
		return v
	}
	if i.rules.MinAge.Enabled {
		if v := i.checkMinimumAge(res); !v.Safe {
			i.logDenial(res, v.Reason)
			return v
		}
	}
	return Verdict{Safe: true}
}

// FilterSafe returns only the resources the interceptor allows
func (i *Interceptor) FilterSafe(resources []Resource) []Resource {
	safe := make([]Resource, 0, len(resources))
	for _, res := range resources {
		if i.Validate(res).Safe {
			safe = append(safe, res)
		}
	}
	return safe
}

// checkRestrictedTags denies when any tag key or value matches the
// restricted set, case-insensitively. Keys are walked in sorted order so the
// reported reason is stable for a given resource.
func (i *Interceptor) checkRestrictedTags(res Resource) Verdict {
	keys := make([]string, 0, len(res.Tags))
	for k := range res.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := res.Tags[k]
		if i.rules.isRestrictedTagValue(k) {
			return Verdict{Reason: fmt.Sprintf("resource carries restricted tag key %q", k)}
		}
		if i.rules.isRestrictedTagValue(v) {
			return Verdict{Reason: fmt.Sprintf("resource tag %q has restricted value %q", k, v)}
		}
	}
	return Verdict{Safe: true}
}

// checkProtectedType denies resource types containing a protected substring.
// Database deletion stays globally disabled regardless of confidence or age.
func (i *Interceptor) checkProtectedType(res Resource) Verdict {
	lowered := strings.ToLower(res.ResourceType)
	for _, sub := range i.rules.ProtectedTypeSubstrings {
		if sub != "" && strings.Contains(lowered, sub) {
			return Verdict{Reason: fmt.Sprintf("resource type %q is protected (%s): deletion is disabled", res.ResourceType, sub)}
		}
	}
	return Verdict{Safe: true}
}

func (i *Interceptor) checkExtraDenyRules(res Resource) Verdict {
	for _, rule := range i.rules.ExtraDeny {
		if matched, reason := rule.matches(res); matched {
			return Verdict{Reason: reason}
		}
	}
	return Verdict{Safe: true}
}

// checkMinimumAge denies resources younger than the configured minimum age.
// A resource whose age cannot be determined passes: the rule protects
// freshly created resources, it does not gate unknowns.
func (i *Interceptor) checkMinimumAge(res Resource) Verdict {
	age, known := resourceAgeDays(res)
	if !known {
		return Verdict{Safe: true}
	}
	if age < float64(i.rules.MinAge.Days) {
		return Verdict{Reason: fmt.Sprintf(
			"resource is %.1f days old, younger than the %d day minimum before deletion",
			age, i.rules.MinAge.Days)}
	}
	return Verdict{Safe: true}
}

func resourceAgeDays(res Resource) (float64, bool) {
	if res.AgeDays != nil {
		return *res.AgeDays, true
	}
	if res.CreatedAt != nil {
		return time.Since(*res.CreatedAt).Hours() / 24, true
	}
	return 0, false
}

func (i *Interceptor) logDenial(res Resource, reason string) {
	i.logger.WithFields(map[string]interface{}{
		"resource_id":   res.ResourceID,
		"resource_type": res.ResourceType,
		"reason":        reason,
	}).Info("SafeOps denied remediation target")
}
