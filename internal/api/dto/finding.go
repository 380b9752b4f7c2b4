package dto

import (
	"encoding/json"
	"time"
)

// FindingDTO represents an architectural inefficiency finding in API responses
type FindingDTO struct {
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
