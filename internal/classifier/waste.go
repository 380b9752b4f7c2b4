package classifier

import (
	"sort"

	"github.com/wastegate/wastegate/internal/pkg/logger"
)

// WasteClassifier turns raw per-resource scan records into prioritized,
// costed remediation recommendations. Classification is deterministic:
// identical input produces identical output, and malformed records are
// coerced or skipped rather than failing the run.
type WasteClassifier struct {
	logger *logger.Logger
}

// NewWasteClassifier creates a new waste/rightsizing classifier
func NewWasteClassifier(log *logger.Logger) *WasteClassifier {
	return &WasteClassifier{logger: log}
}

// Classify processes a scan payload (category name to resource record list)
// and returns ordered recommendations with a summary.
func (c *WasteClassifier) Classify(scanResults map[string]interface{}) *WasteReport {
	recommendations := make([]Recommendation, 0)

	categories := make([]string, 0, len(scanResults))
	for key := range scanResults {
		categories = append(categories, key)
	}
	sort.Strings(categories)

	for _, category := range categories {
		if !IsCategoryKey(category) {
			continue
		}
		rule, known := RuleFor(category)
		if !known {
			// Unclassified waste is not actioned
			c.logger.Debugf("skipping unknown scan category %q", category)
			continue
		}

		for _, rec := range records(scanResults[category]) {
			recommendations = append(recommendations, c.classifyRecord(category, rule, rec))
		}
	}

	sort.Slice(recommendations, func(i, j int) bool {
		a, b := recommendations[i], recommendations[j]
		if a.ExpectedMonthlySavings.Mid != b.ExpectedMonthlySavings.Mid {
			return a.ExpectedMonthlySavings.Mid > b.ExpectedMonthlySavings.Mid
		}
		if a.ResourceID != b.ResourceID {
			return a.ResourceID < b.ResourceID
		}
		return a.Category < b.Category
	})

	return &WasteReport{
		Deterministic:   true,
		Recommendations: recommendations,
		Summary:         summarizeWaste(recommendations),
	}
}

func (c *WasteClassifier) classifyRecord(category string, rule DetectionRule, rec map[string]interface{}) Recommendation {
	cost := monthlyCost(rec)

	return Recommendation{
		ResourceID:     resourceID(rec),
		Category:       category,
		DetectionClass: rule.DetectionClass,
		RequiredAction: rule.RequiredAction,
		PolicyRoute:    rule.PolicyRoute,
		Confidence:     adjustConfidence(rule.BaseConfidence, rec),
		ExpectedMonthlySavings: SavingsRange{
			Low:  round2(cost * rule.SavingsFactors.Low),
			Mid:  round2(cost * rule.SavingsFactors.Mid),
			High: round2(cost * rule.SavingsFactors.High),
		},
	}
}

// adjustConfidence applies the additive signal adjustments to a rule's base
// confidence. Utilization bands are mutually exclusive with the lowest band
// winning; a missing signal contributes nothing.
func adjustConfidence(base float64, rec map[string]interface{}) float64 {
	conf := base

	if util, ok := numberField(rec, "utilization_percent", "cpu_utilization", "utilization"); ok {
		switch {
		case util <= 5:
			conf += 0.08
		case util <= 15:
			conf += 0.04
		case util >= 45:
			conf -= 0.08
		}
	}

	if idle, ok := numberField(rec, "days_idle", "idle_days"); ok {
		switch {
		case idle >= 30:
			conf += 0.06
		case idle >= 7:
			conf += 0.03
		case idle < 3:
			conf -= 0.05
		}
	}

	if hasDependencies(rec) {
		conf -= 0.20
	}

	if isProduction(rec, resolveEnvironment(rec)) {
		conf -= 0.10
	}

	return clampConfidence(conf)
}

func summarizeWaste(recommendations []Recommendation) WasteSummary {
	byClass := make(map[string]int)
	var total SavingsRange
	for _, r := range recommendations {
		byClass[r.DetectionClass]++
		total = total.Add(r.ExpectedMonthlySavings)
	}
	return WasteSummary{
		TotalRecommendations: len(recommendations),
		ByDetectionClass:     byClass,
		EstimatedMonthlySavingsRange: SavingsRange{
			Low:  round2(total.Low),
			Mid:  round2(total.Mid),
			High: round2(total.High),
		},
	}
}
