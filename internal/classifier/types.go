package classifier

// SavingsRange holds a low/mid/high monthly savings estimate in USD
type SavingsRange struct {
	Low  float64 `json:"low"`
	Mid  float64 `json:"mid"`
	High float64 `json:"high"`
}

// Add returns the element-wise sum of two ranges
func (s SavingsRange) Add(o SavingsRange) SavingsRange {
	return SavingsRange{
		Low:  s.Low + o.Low,
		Mid:  s.Mid + o.Mid,
		High: s.High + o.High,
	}
}

// Recommendation is one proposed remediation with its economics
type Recommendation struct {
	ResourceID             string       `json:"resource_id"`
	Category               string       `json:"category"`
	DetectionClass         string       `json:"detection_class"`
	RequiredAction         string       `json:"required_action"`
	PolicyRoute            string       `json:"policy_route"`
	Confidence             float64      `json:"confidence"`
	ExpectedMonthlySavings SavingsRange `json:"expected_monthly_savings"`
}

// WasteSummary aggregates a waste classification run
type WasteSummary struct {
	TotalRecommendations         int            `json:"total_recommendations"`
	ByDetectionClass             map[string]int `json:"by_detection_class"`
	EstimatedMonthlySavingsRange SavingsRange   `json:"estimated_monthly_savings_range"`
}

// WasteReport is the full output of the waste/rightsizing classifier
type WasteReport struct {
	Deterministic   bool             `json:"deterministic"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         WasteSummary     `json:"summary"`
}

// Finding is one architectural inefficiency detection
type Finding struct {
	FindingType            string                 `json:"finding_type"`
	ResourceID             string                 `json:"resource_id"`
	ResourceIDs            []string               `json:"resource_ids,omitempty"`
	Provider               string                 `json:"provider,omitempty"`
	Environment            string                 `json:"environment,omitempty"`
	RiskLabel              string                 `json:"risk_label"`
	RequiredAction         string                 `json:"required_action"`
	PolicyRoute            string                 `json:"policy_route"`
	Confidence             float64                `json:"confidence"`
	ExpectedMonthlySavings SavingsRange           `json:"expected_monthly_savings"`
	Details                map[string]interface{} `json:"details,omitempty"`
}

// ArchitectureSummary aggregates an architecture detection run
type ArchitectureSummary struct {
	TotalFindings                int            `json:"total_findings"`
	ByType                       map[string]int `json:"by_type"`
	EstimatedMonthlySavingsRange SavingsRange   `json:"estimated_monthly_savings_range"`
}

// ArchitectureReport is the full output of the architecture detector
type ArchitectureReport struct {
	Deterministic bool                `json:"deterministic"`
	Findings      []Finding           `json:"findings"`
	Summary       ArchitectureSummary `json:"summary"`
}

// Finding types emitted by the architecture detector
const (
	FindingOverbuiltAvailability = "overbuilt_availability"
	FindingUnjustifiedMultiZone  = "unjustified_multi_zone"
	FindingDuplicatedNonProdEnv  = "duplicated_non_production_environment"
)

// Policy routes
const (
	RouteAutoQueue    = "auto_queue"
	RouteManualReview = "manual_review"
)

// Risk labels
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)
