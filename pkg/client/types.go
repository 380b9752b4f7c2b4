package client

import (
	"encoding/json"
	"time"
)

// SavingsBand carries the low/mid/high monthly savings estimate in USD
type SavingsBand struct {
	LowUSD  float64 `json:"lowUsd"`
	MidUSD  float64 `json:"midUsd"`
	HighUSD float64 `json:"highUsd"`
}

// ScanRun represents one classification run
type ScanRun struct {
	ID              string     `json:"id"`
	Source          string     `json:"source"` // api, cli, job
	Summary         RunSummary `json:"summary"`
	Recommendations int        `json:"recommendations"`
	Findings        int        `json:"findings"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// RunSummary aggregates what a run produced
type RunSummary struct {
	TotalRecommendations int            `json:"totalRecommendations"`
	TotalFindings        int            `json:"totalFindings"`
	ByDetectionClass     map[string]int `json:"byDetectionClass,omitempty"`
	ByFindingType        map[string]int `json:"byFindingType,omitempty"`
	Savings              SavingsBand    `json:"savings"`
}

// ScanResult is the combined payload returned by a scan submission
type ScanResult struct {
	Run             ScanRun          `json:"run"`
	Recommendations []Recommendation `json:"recommendations"`
	Findings        []Finding        `json:"findings"`
}

// RunAnalysis is a narrative summary of one run
type RunAnalysis struct {
	RunID       string    `json:"runId"`
	Narrative   string    `json:"narrative"`
	Source      string    `json:"source"` // llm, template
	GeneratedAt time.Time `json:"generatedAt"`
}

// Recommendation represents a waste remediation recommendation
type Recommendation struct {
	ID             string      `json:"id"`
	RunID          string      `json:"runId"`
	ResourceID     string      `json:"resourceId"`
	Category       string      `json:"category"`
	DetectionClass string      `json:"detectionClass"`
	RequiredAction string      `json:"requiredAction"`
	PolicyRoute    string      `json:"policyRoute"` // auto_queue, manual_review
	Confidence     float64     `json:"confidence"`
	Savings        SavingsBand `json:"savings"`
	Status         string      `json:"status"` // pending, actioned, dismissed, expired
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// SavingsTotals aggregates potential savings over pending recommendations
type SavingsTotals struct {
	Count   int     `json:"count"`
	LowUSD  float64 `json:"lowUsd"`
	MidUSD  float64 `json:"midUsd"`
	HighUSD float64 `json:"highUsd"`
}

// Finding represents an architectural inefficiency finding
type Finding struct {
	ID             string          `json:"id"`
	RunID          string          `json:"runId"`
	FindingType    string          `json:"findingType"`
	ResourceID     string          `json:"resourceId"`
	ResourceIDs    []string        `json:"resourceIds,omitempty"`
	Provider       string          `json:"provider,omitempty"`
	Environment    string          `json:"environment,omitempty"`
	RiskLabel      string          `json:"riskLabel"`
	RequiredAction string          `json:"requiredAction"`
	PolicyRoute    string          `json:"policyRoute"`
	Confidence     float64         `json:"confidence"`
	Savings        SavingsBand     `json:"savings"`
	Details        json.RawMessage `json:"details,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// RemediationAction represents a gated remediation action
type RemediationAction struct {
	ID                  string            `json:"id"`
	RecommendationID    *string           `json:"recommendationId,omitempty"`
	ResourceID          string            `json:"resourceId"`
	ResourceType        string            `json:"resourceType"`
	Tags                map[string]string `json:"tags,omitempty"`
	ActionType          string            `json:"actionType"`
	PolicyRoute         string            `json:"policyRoute"`
	Status              string            `json:"status"` // pending, approved, denied, applied, failed
	EstimatedSavingsUSD float64           `json:"estimatedSavingsUsd"`
	SafetyVerdict       *string           `json:"safetyVerdict,omitempty"`
	DenialCode          string            `json:"denialCode,omitempty"`
	Result              json.RawMessage   `json:"result,omitempty"`
	ErrorMessage        string            `json:"errorMessage,omitempty"`
	ApprovedBy          *int64            `json:"approvedBy,omitempty"`
	ApprovedAt          *time.Time        `json:"approvedAt,omitempty"`
	ExecutedAt          *time.Time        `json:"executedAt,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// RemediationSummary counts a tenant's actions by status
type RemediationSummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

// SafetyResource is the caller-supplied view of a candidate resource
type SafetyResource struct {
	ResourceID   string            `json:"resourceId"`
	ResourceType string            `json:"resourceType,omitempty"`
	Tags         map[string]string `json:"tags,omitempty"`
	CreatedAt    *time.Time        `json:"createdAt,omitempty"`
	AgeDays      *float64          `json:"ageDays,omitempty"`
}

// SafetyVerdict is the verdict for one checked resource
type SafetyVerdict struct {
	ResourceID string `json:"resourceId"`
	IsSafe     bool   `json:"isSafe"`
	Reason     string `json:"reason,omitempty"`
}

// SafetyFilterResult returns the subset of submitted resources that passed
type SafetyFilterResult struct {
	Safe     []SafetyResource `json:"safe"`
	Excluded int              `json:"excluded"`
}

// GuardCheckResult reports whether the guards would allow an action
type GuardCheckResult struct {
	Allowed    bool   `json:"allowed"`
	DenialCode string `json:"denialCode,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// BreakerStatus is the operational snapshot of one tenant's circuit breaker
type BreakerStatus struct {
	TenantID        string  `json:"tenantId"`
	State           string  `json:"state"` // closed, open, half_open
	FailureCount    int64   `json:"failureCount"`
	DailySavingsUSD float64 `json:"dailySavingsUsd"`
	CanExecute      bool    `json:"canExecute"`
	LastError       string  `json:"lastError,omitempty"`
}

// TenantSettings is a tenant's effective safety settings
type TenantSettings struct {
	TenantID               string    `json:"tenantId"`
	KillSwitchThresholdUSD float64   `json:"killSwitchThresholdUsd"`
	KillSwitchScope        string    `json:"killSwitchScope"` // tenant, global
	MonthlyCapEnabled      bool      `json:"monthlyCapEnabled"`
	MonthlyCapUSD          float64   `json:"monthlyCapUsd"`
	FailureThreshold       int       `json:"failureThreshold"`
	RecoveryTimeoutSecs    int       `json:"recoveryTimeoutSecs"`
	MaxDailySavingsUSD     float64   `json:"maxDailySavingsUsd"`
	MinAgeEnabled          bool      `json:"minAgeEnabled"`
	MinAgeDays             int       `json:"minAgeDays"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// UpdateSettingsRequest is a partial settings update; nil leaves a field unchanged
type UpdateSettingsRequest struct {
	KillSwitchThresholdUSD *float64 `json:"killSwitchThresholdUsd,omitempty"`
	KillSwitchScope        *string  `json:"killSwitchScope,omitempty"`
	MonthlyCapEnabled      *bool    `json:"monthlyCapEnabled,omitempty"`
	MonthlyCapUSD          *float64 `json:"monthlyCapUsd,omitempty"`
	FailureThreshold       *int     `json:"failureThreshold,omitempty"`
	RecoveryTimeoutSecs    *int     `json:"recoveryTimeoutSecs,omitempty"`
	MaxDailySavingsUSD     *float64 `json:"maxDailySavingsUsd,omitempty"`
	MinAgeEnabled          *bool    `json:"minAgeEnabled,omitempty"`
	MinAgeDays             *int     `json:"minAgeDays,omitempty"`
}

// CostRecord represents one cost ledger entry
type CostRecord struct {
	ID          string    `json:"id"`
	Provider    string    `json:"provider,omitempty"`
	ServiceName string    `json:"serviceName,omitempty"`
	AmountUSD   float64   `json:"amountUsd"`
	Currency    string    `json:"currency"`
	IncurredOn  time.Time `json:"incurredOn"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SavingsRecord represents one realized savings entry
type SavingsRecord struct {
	ID         string    `json:"id"`
	ActionID   *string   `json:"actionId,omitempty"`
	ResourceID string    `json:"resourceId,omitempty"`
	AmountUSD  float64   `json:"amountUsd"`
	RealizedOn time.Time `json:"realizedOn"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DailyReport summarizes one UTC day of realized savings
type DailyReport struct {
	Day      string  `json:"day"`
	TotalUSD float64 `json:"totalUsd"`
	Records  int     `json:"records"`
}

// MonthlyReport summarizes one calendar month of savings against spend
type MonthlyReport struct {
	Month      string  `json:"month"`
	SavingsUSD float64 `json:"savingsUsd"`
	CostUSD    float64 `json:"costUsd"`
}

// ChannelConfig represents a configured delivery channel
type ChannelConfig struct {
	ID        string          `json:"id"`
	Channel   string          `json:"channel"` // slack, webhook
	IsEnabled bool            `json:"isEnabled"`
	Config    json.RawMessage `json:"config,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NotificationLog is one delivery attempt record
type NotificationLog struct {
	ID           string     `json:"id"`
	Channel      string     `json:"channel"`
	EventType    string     `json:"eventType"`
	Status       string     `json:"status"` // pending, sent, failed
	ErrorMessage string     `json:"errorMessage,omitempty"`
	SentAt       *time.Time `json:"sentAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// User represents an operator account
type User struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"fullName,omitempty"`
	TenantID string  `json:"tenantId"`
	Role     string  `json:"role"` // operator, admin
}

// ListOptions contains common options for list operations
type ListOptions struct {
	Page     int `json:"page,omitempty"`      // Page number (1-based)
	PageSize int `json:"page_size,omitempty"` // Items per page
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}
