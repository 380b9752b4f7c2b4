package classification

import (
	"encoding/json"
	"time"
)

// Run represents one ingest-and-classify cycle over a scan payload
type Run struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id"`
	Source          string          `json:"source"`
	Payload         json.RawMessage `json:"payload,omitempty"`
	Summary         RunSummary      `json:"summary"`
	Recommendations int             `json:"recommendations"`
	Findings        int             `json:"findings"`
	CreatedAt       time.Time       `json:"created_at"`
}

// RunSummary aggregates what a run produced
type RunSummary struct {
	TotalRecommendations int            `json:"total_recommendations"`
	TotalFindings        int            `json:"total_findings"`
	ByDetectionClass     map[string]int `json:"by_detection_class,omitempty"`
	ByFindingType        map[string]int `json:"by_finding_type,omitempty"`
	SavingsLowUSD        float64        `json:"savings_low_usd"`
	SavingsMidUSD        float64        `json:"savings_mid_usd"`
	SavingsHighUSD       float64        `json:"savings_high_usd"`
}

// Run sources
const (
	SourceAPI = "api"
	SourceCLI = "cli"
	SourceJob = "job"
)

// Recommendation is a persisted waste-remediation recommendation
type Recommendation struct {
	ID             string    `json:"id"`
	RunID          string    `json:"run_id"`
	TenantID       string    `json:"tenant_id"`
	ResourceID     string    `json:"resource_id"`
	Category       string    `json:"category"`
	DetectionClass string    `json:"detection_class"`
	RequiredAction string    `json:"required_action"`
	PolicyRoute    string    `json:"policy_route"`
	Confidence     float64   `json:"confidence"`
	SavingsLowUSD  float64   `json:"savings_low_usd"`
	SavingsMidUSD  float64   `json:"savings_mid_usd"`
	SavingsHighUSD float64   `json:"savings_high_usd"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ArchFinding is a persisted architectural inefficiency finding
type ArchFinding struct {
	ID             string          `json:"id"`
	RunID          string          `json:"run_id"`
	TenantID       string          `json:"tenant_id"`
	FindingType    string          `json:"finding_type"`
	ResourceID     string          `json:"resource_id"`
	ResourceIDs    []string        `json:"resource_ids,omitempty"`
	Provider       string          `json:"provider,omitempty"`
	Environment    string          `json:"environment,omitempty"`
	RiskLabel      string          `json:"risk_label"`
	RequiredAction string          `json:"required_action"`
	PolicyRoute    string          `json:"policy_route"`
	Confidence     float64         `json:"confidence"`
	SavingsLowUSD  float64         `json:"savings_low_usd"`
	SavingsMidUSD  float64         `json:"savings_mid_usd"`
	SavingsHighUSD float64         `json:"savings_high_usd"`
	Details        json.RawMessage `json:"details,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Status represents the lifecycle state of a recommendation
type Status string

const (
	StatusPending   Status = "pending"
	StatusActioned  Status = "actioned"
	StatusDismissed Status = "dismissed"
	StatusExpired   Status = "expired"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActioned, StatusDismissed, StatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal checks if a recommendation can no longer be actioned
func (s Status) IsTerminal() bool {
	return s == StatusDismissed || s == StatusExpired
}

// Filter contains recommendation filtering options
type Filter struct {
	RunID          string
	Status         Status
	DetectionClass string
	PolicyRoute    string
	MinConfidence  float64
}

// FindingFilter contains finding filtering options
type FindingFilter struct {
	RunID       string
	FindingType string
	RiskLabel   string
}

// SavingsTotals aggregates potential savings over pending recommendations
type SavingsTotals struct {
	Count   int     `json:"count"`
	LowUSD  float64 `json:"low_usd"`
	MidUSD  float64 `json:"mid_usd"`
	HighUSD float64 `json:"high_usd"`
}
