package dto

import (
	"encoding/json"
	"time"
)

// CreateRemediationRequest creates an action. Either name a recommendation to
// derive the action from, or describe the target resource directly.
type CreateRemediationRequest struct {
	RecommendationID    string            `json:"recommendationId,omitempty"`
	ResourceID          string            `json:"resourceId,omitempty"`
	ResourceType        string            `json:"resourceType,omitempty"`
	Tags                map[string]string `json:"tags,omitempty"`
	ActionType          string            `json:"actionType,omitempty"`
	PolicyRoute         string            `json:"policyRoute,omitempty" validate:"omitempty,oneof=auto_queue manual_review"`
	EstimatedSavingsUSD float64           `json:"estimatedSavingsUsd,omitempty" validate:"omitempty,gte=0"`
}

// RemediationActionDTO represents a gated remediation action in API responses
type RemediationActionDTO struct {
	ID                  string            `json:"id"`
	RecommendationID    *string           `json:"recommendationId,omitempty"`
	ResourceID          string            `json:"resourceId"`
	ResourceType        string            `json:"resourceType"`
	Tags                map[string]string `json:"tags,omitempty"`
	ActionType          string            `json:"actionType"`
	PolicyRoute         string            `json:"policyRoute"`
	Status              string            `json:"status"`
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

// RemediationSummaryDTO counts a tenant's actions by status
type RemediationSummaryDTO struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}
