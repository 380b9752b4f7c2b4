package classifier

// DetectionRule maps a scan category to its remediation semantics.
// Rules are fixed at compile time; the low/mid/high factor ordering is a
// property the table must satisfy by construction, it is not enforced here.
type DetectionRule struct {
	DetectionClass string
	RequiredAction string
	PolicyRoute    string
	BaseConfidence float64
	SavingsFactors SavingsRange
}

// nonCategoryKeys are summary/meta fields of a scan payload that never hold
// classifiable resource lists.
var nonCategoryKeys = map[string]struct{}{
	"ai_analysis":                {},
	"partial_results":            {},
	"scan_timeout":               {},
	"scanned_connections":        {},
	"total_monthly_waste":        {},
	"waste_rightsizing":          {},
	"architectural_inefficiency": {},
}

var detectionRules = map[string]DetectionRule{
	"idle_instances": {
		DetectionClass: "idle_compute",
		RequiredAction: "stop_or_terminate",
		PolicyRoute:    RouteAutoQueue,
		BaseConfidence: 0.75,
		SavingsFactors: SavingsRange{Low: 0.55, Mid: 0.75, High: 0.95},
	},
	"unattached_volumes": {
		DetectionClass: "unattached_storage",
		RequiredAction: "snapshot_then_delete",
		PolicyRoute:    RouteAutoQueue,
		BaseConfidence: 0.82,
		SavingsFactors: SavingsRange{Low: 0.80, Mid: 0.90, High: 1.00},
	},
	"unused_elastic_ips": {
		DetectionClass: "unused_ip_address",
		RequiredAction: "release",
		PolicyRoute:    RouteAutoQueue,
		BaseConfidence: 0.85,
		SavingsFactors: SavingsRange{Low: 0.90, Mid: 0.95, High: 1.00},
	},
	"oversized_instances": {
		DetectionClass: "overprovisioned_compute",
		RequiredAction: "rightsize",
		PolicyRoute:    RouteManualReview,
		BaseConfidence: 0.68,
		SavingsFactors: SavingsRange{Low: 0.30, Mid: 0.45, High: 0.60},
	},
	"old_snapshots": {
		DetectionClass: "stale_snapshot",
		RequiredAction: "archive_then_delete",
		PolicyRoute:    RouteAutoQueue,
		BaseConfidence: 0.78,
		SavingsFactors: SavingsRange{Low: 0.70, Mid: 0.85, High: 1.00},
	},
	"idle_load_balancers": {
		DetectionClass: "idle_load_balancer",
		RequiredAction: "delete",
		PolicyRoute:    RouteAutoQueue,
		BaseConfidence: 0.80,
		SavingsFactors: SavingsRange{Low: 0.85, Mid: 0.95, High: 1.00},
	},
	"idle_databases": {
		DetectionClass: "idle_database",
		RequiredAction: "flag_for_review",
		PolicyRoute:    RouteManualReview,
		BaseConfidence: 0.70,
		SavingsFactors: SavingsRange{Low: 0.40, Mid: 0.55, High: 0.70},
	},
	"orphaned_dns_records": {
		DetectionClass: "orphaned_dns",
		RequiredAction: "delete",
		PolicyRoute:    RouteManualReview,
		BaseConfidence: 0.72,
		SavingsFactors: SavingsRange{Low: 0.85, Mid: 0.95, High: 1.00},
	},
}

// RuleFor returns the detection rule for a scan category, if one exists
func RuleFor(category string) (DetectionRule, bool) {
	r, ok := detectionRules[category]
	return r, ok
}

// IsCategoryKey reports whether a scan payload key may hold a resource list
func IsCategoryKey(key string) bool {
	_, reserved := nonCategoryKeys[key]
	return !reserved
}

// nonProductionEnvs is the environment set treated as non-production by the
// architecture rules. "unknown" is deliberately absent.
var nonProductionEnvs = map[string]struct{}{
	"dev":         {},
	"development": {},
	"test":        {},
	"testing":     {},
	"qa":          {},
	"stage":       {},
	"staging":     {},
	"sandbox":     {},
	"demo":        {},
}

var productionEnvs = map[string]struct{}{
	"prod":       {},
	"production": {},
}

// lowCriticalityValues qualifies a workload for the multi-zone rule
var lowCriticalityValues = map[string]struct{}{
	"low":     {},
	"minimal": {},
	"none":    {},
}
