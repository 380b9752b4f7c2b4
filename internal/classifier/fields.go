package classifier

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Field coercion for raw scan records. Scan payloads arrive as decoded JSON
// with no schema guarantees; every helper tolerates missing or mistyped
// values so a classification run can never fail on malformed input.

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func asBool(v interface{}) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	default:
		return false, false
	}
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// numberField returns the first present numeric value among keys
func numberField(rec map[string]interface{}, keys ...string) (float64, bool) {
	for _, k := range keys {
		if raw, present := rec[k]; present {
			if f, ok := asFloat(raw); ok {
				return f, true
			}
		}
	}
	return 0, false
}

// monthlyCost resolves a record's monthly cost: the first present
// non-negative numeric among the cost aliases, defaulting to 0.
func monthlyCost(rec map[string]interface{}) float64 {
	for _, k := range []string{"monthly_cost", "monthly_waste", "estimated_monthly_savings"} {
		if raw, present := rec[k]; present {
			if f, ok := asFloat(raw); ok && f >= 0 {
				return f
			}
		}
	}
	return 0
}

// tags extracts the record's tag map, tolerating both map[string]interface{}
// and map[string]string shapes.
func tags(rec map[string]interface{}) map[string]string {
	out := map[string]string{}
	raw, present := rec["tags"]
	if !present {
		return out
	}
	switch m := raw.(type) {
	case map[string]interface{}:
		for k, v := range m {
			if s, ok := asString(v); ok {
				out[k] = s
			}
		}
	case map[string]string:
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// resolveEnvironment applies the environment precedence chain:
// explicit field, then environment-ish tags, then "unknown".
func resolveEnvironment(rec map[string]interface{}) string {
	if s, ok := asString(rec["environment"]); ok && strings.TrimSpace(s) != "" {
		return strings.ToLower(strings.TrimSpace(s))
	}
	t := tags(rec)
	for _, key := range []string{"environment", "env", "stage"} {
		for _, tk := range sortedKeys(t) {
			if tv := t[tk]; strings.EqualFold(tk, key) && strings.TrimSpace(tv) != "" {
				return strings.ToLower(strings.TrimSpace(tv))
			}
		}
	}
	return "unknown"
}

// sortedKeys pins tag scan order so resolution never depends on map iteration
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isNonProduction(env string) bool {
	_, ok := nonProductionEnvs[env]
	return ok
}

// isProduction reports whether a record is marked production, either by an
// explicit boolean or by its resolved environment.
func isProduction(rec map[string]interface{}, env string) bool {
	if b, ok := asBool(rec["production"]); ok && b {
		return true
	}
	_, ok := productionEnvs[env]
	return ok
}

// resolveZoneCount applies the zone precedence chain. The second return is
// false when the record carries no usable zone signal at all, in which case
// zone-dependent rules skip it.
func resolveZoneCount(rec map[string]interface{}) (int, bool) {
	if f, ok := numberField(rec, "zone_count"); ok && f >= 0 {
		return int(f), true
	}

	for _, k := range []string{"availability_zones", "zones"} {
		raw, present := rec[k]
		if !present {
			continue
		}
		if n, ok := countZoneList(raw); ok {
			return n, true
		}
	}

	if b, ok := asBool(rec["multi_az"]); ok && b {
		return 2, true
	}

	for _, k := range []string{"region", "zone"} {
		if s, ok := asString(rec[k]); ok && strings.TrimSpace(s) != "" {
			return 1, true
		}
	}

	return 0, false
}

// countZoneList counts distinct zones from a list value or a comma-separated
// string.
func countZoneList(raw interface{}) (int, bool) {
	seen := map[string]struct{}{}
	switch v := raw.(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := asString(item); ok {
				if s = strings.TrimSpace(s); s != "" {
					seen[s] = struct{}{}
				}
			}
		}
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				seen[s] = struct{}{}
			}
		}
	case string:
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				seen[part] = struct{}{}
			}
		}
	default:
		return 0, false
	}
	if len(seen) == 0 {
		return 0, false
	}
	return len(seen), true
}

// resolveCriticality returns the normalized criticality from the record
// field or its tags.
func resolveCriticality(rec map[string]interface{}) string {
	if s, ok := asString(rec["criticality"]); ok && strings.TrimSpace(s) != "" {
		return strings.ToLower(strings.TrimSpace(s))
	}
	t := tags(rec)
	for _, tk := range sortedKeys(t) {
		if tv := t[tk]; strings.EqualFold(tk, "criticality") && strings.TrimSpace(tv) != "" {
			return strings.ToLower(strings.TrimSpace(tv))
		}
	}
	return ""
}

// hasDependencies reports whether the record declares attached dependencies
func hasDependencies(rec map[string]interface{}) bool {
	if b, ok := asBool(rec["has_dependencies"]); ok {
		return b
	}
	if deps, ok := rec["dependencies"].([]interface{}); ok {
		return len(deps) > 0
	}
	return false
}

func resourceID(rec map[string]interface{}) string {
	if s, ok := asString(rec["resource_id"]); ok {
		return s
	}
	return ""
}

func clampConfidence(c float64) float64 {
	return round2(math.Min(0.99, math.Max(0.50, c)))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// records extracts the resource list for one category value; non-list values
// and non-map entries are dropped.
func records(raw interface{}) []map[string]interface{} {
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if rec, ok := item.(map[string]interface{}); ok {
			out = append(out, rec)
		}
	}
	return out
}
