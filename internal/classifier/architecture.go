package classifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wastegate/wastegate/internal/pkg/logger"
)

// ArchitectureDetector finds structural overspend that per-resource waste
// rules cannot see: availability overbuild in non-production, multi-zone
// deployments without an SLO to justify them, and duplicated non-production
// environments. Like the waste classifier it is deterministic and never
// fails on malformed records.
type ArchitectureDetector struct {
	logger *logger.Logger
}

// NewArchitectureDetector creates a new architecture inefficiency detector
func NewArchitectureDetector(log *logger.Logger) *ArchitectureDetector {
	return &ArchitectureDetector{logger: log}
}

// Detect processes a scan payload and returns ordered findings with a summary
func (d *ArchitectureDetector) Detect(scanResults map[string]interface{}) *ArchitectureReport {
	findings := make([]Finding, 0)

	categories := make([]string, 0, len(scanResults))
	for key := range scanResults {
		categories = append(categories, key)
	}
	sort.Strings(categories)

	groups := make(map[envGroupKey]*envGroup)

	for _, category := range categories {
		if !IsCategoryKey(category) {
			continue
		}
		for _, rec := range records(scanResults[category]) {
			if f, ok := d.checkOverbuiltAvailability(rec); ok {
				findings = append(findings, f)
			}
			if f, ok := d.checkUnjustifiedMultiZone(rec); ok {
				findings = append(findings, f)
			}
			d.collectEnvGroup(groups, category, rec)
		}
	}

	findings = append(findings, d.duplicatedEnvFindings(groups)...)

	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.ExpectedMonthlySavings.Mid != b.ExpectedMonthlySavings.Mid {
			return a.ExpectedMonthlySavings.Mid > b.ExpectedMonthlySavings.Mid
		}
		if a.FindingType != b.FindingType {
			return a.FindingType < b.FindingType
		}
		return a.ResourceID < b.ResourceID
	})

	return &ArchitectureReport{
		Deterministic: true,
		Findings:      findings,
		Summary:       summarizeFindings(findings),
	}
}

// checkOverbuiltAvailability fires on multi-zone non-production resources
// whose cost makes a zone reduction worthwhile.
func (d *ArchitectureDetector) checkOverbuiltAvailability(rec map[string]interface{}) (Finding, bool) {
	env := resolveEnvironment(rec)
	if !isNonProduction(env) {
		return Finding{}, false
	}
	zones, known := resolveZoneCount(rec)
	if !known || zones < 2 {
		return Finding{}, false
	}
	cost := monthlyCost(rec)
	if cost < 50 {
		return Finding{}, false
	}

	conf := 0.80
	if zones >= 3 {
		conf += 0.08
	}
	if cost >= 200 {
		conf += 0.05
	}

	return Finding{
		FindingType:    FindingOverbuiltAvailability,
		ResourceID:     resourceID(rec),
		Provider:       resolveProvider(rec),
		Environment:    env,
		RiskLabel:      RiskLow,
		RequiredAction: "reduce_to_single_zone",
		PolicyRoute:    RouteAutoQueue,
		Confidence:     clampConfidence(conf),
		ExpectedMonthlySavings: SavingsRange{
			Low:  round2(cost * 0.20),
			Mid:  round2(cost * 0.35),
			High: round2(cost * 0.50),
		},
		Details: map[string]interface{}{
			"zone_count":   zones,
			"monthly_cost": round2(cost),
		},
	}, true
}

// checkUnjustifiedMultiZone fires on multi-zone resources whose SLO target
// does not require multi-zone availability and whose criticality is low.
func (d *ArchitectureDetector) checkUnjustifiedMultiZone(rec map[string]interface{}) (Finding, bool) {
	zones, known := resolveZoneCount(rec)
	if !known || zones < 2 {
		return Finding{}, false
	}
	slo, ok := numberField(rec, "slo_target")
	if !ok || slo >= 99.9 {
		return Finding{}, false
	}
	criticality := resolveCriticality(rec)
	if _, low := lowCriticalityValues[criticality]; !low {
		return Finding{}, false
	}

	conf := 0.78
	if slo <= 99.5 {
		conf += 0.05
	}

	cost := monthlyCost(rec)
	return Finding{
		FindingType:    FindingUnjustifiedMultiZone,
		ResourceID:     resourceID(rec),
		Provider:       resolveProvider(rec),
		Environment:    resolveEnvironment(rec),
		RiskLabel:      RiskMedium,
		RequiredAction: "consolidate_zones",
		PolicyRoute:    RouteManualReview,
		Confidence:     clampConfidence(conf),
		ExpectedMonthlySavings: SavingsRange{
			Low:  round2(cost * 0.15),
			Mid:  round2(cost * 0.30),
			High: round2(cost * 0.45),
		},
		Details: map[string]interface{}{
			"zone_count":  zones,
			"slo_target":  slo,
			"criticality": criticality,
		},
	}, true
}

type envGroupKey struct {
	provider    string
	service     string
	environment string
}

type envGroup struct {
	resourceIDs []string
	totalCost   float64
	members     int
}

func (d *ArchitectureDetector) collectEnvGroup(groups map[envGroupKey]*envGroup, category string, rec map[string]interface{}) {
	env := resolveEnvironment(rec)
	if !isNonProduction(env) {
		return
	}

	key := envGroupKey{
		provider:    resolveProvider(rec),
		service:     serviceKey(category, rec),
		environment: env,
	}
	g, exists := groups[key]
	if !exists {
		g = &envGroup{}
		groups[key] = g
	}
	g.members++
	g.totalCost += monthlyCost(rec)
	g.resourceIDs = append(g.resourceIDs, resourceID(rec))
}

// duplicatedEnvFindings emits one finding per non-production group with two
// or more members and positive total cost. Keeping n-1 of n copies is the
// assumed consolidation, so the duplicate portion is total*(n-1)/n.
func (d *ArchitectureDetector) duplicatedEnvFindings(groups map[envGroupKey]*envGroup) []Finding {
	keys := make([]envGroupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.provider != b.provider {
			return a.provider < b.provider
		}
		if a.service != b.service {
			return a.service < b.service
		}
		return a.environment < b.environment
	})

	findings := make([]Finding, 0)
	for _, key := range keys {
		g := groups[key]
		if g.members < 2 || g.totalCost <= 0 {
			continue
		}

		ids := append([]string(nil), g.resourceIDs...)
		sort.Strings(ids)

		portion := g.totalCost * float64(g.members-1) / float64(g.members)
		d.logger.Debugf("duplicated non-production group %s: %d members, $%.2f/month", groupLabel(key), g.members, g.totalCost)
		findings = append(findings, Finding{
			FindingType:    FindingDuplicatedNonProdEnv,
			ResourceID:     ids[0],
			ResourceIDs:    ids,
			Provider:       key.provider,
			Environment:    key.environment,
			RiskLabel:      RiskMedium,
			RequiredAction: "consolidate_environments",
			PolicyRoute:    RouteManualReview,
			Confidence:     0.84,
			ExpectedMonthlySavings: SavingsRange{
				Low:  round2(portion * 0.25),
				Mid:  round2(portion * 0.40),
				High: round2(portion * 0.60),
			},
			Details: map[string]interface{}{
				"service":            key.service,
				"member_count":       g.members,
				"total_monthly_cost": round2(g.totalCost),
				"duplicate_portion":  round2(portion),
			},
		})
	}
	return findings
}

func resolveProvider(rec map[string]interface{}) string {
	if s, ok := asString(rec["provider"]); ok && strings.TrimSpace(s) != "" {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return "unknown"
}

// serviceKey groups records by service identity, falling back through
// workload and resource type to the scan category itself.
func serviceKey(category string, rec map[string]interface{}) string {
	for _, k := range []string{"service", "workload", "resource_type"} {
		if s, ok := asString(rec[k]); ok && strings.TrimSpace(s) != "" {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return category
}

func summarizeFindings(findings []Finding) ArchitectureSummary {
	byType := make(map[string]int)
	var total SavingsRange
	for _, f := range findings {
		byType[f.FindingType]++
		total = total.Add(f.ExpectedMonthlySavings)
	}
	return ArchitectureSummary{
		TotalFindings: len(findings),
		ByType:        byType,
		EstimatedMonthlySavingsRange: SavingsRange{
			Low:  round2(total.Low),
			Mid:  round2(total.Mid),
			High: round2(total.High),
		},
	}
}

// groupLabel is used in logs when a duplicated environment group fires
func groupLabel(key envGroupKey) string {
	return fmt.Sprintf("%s/%s/%s", key.provider, key.service, key.environment)
}
