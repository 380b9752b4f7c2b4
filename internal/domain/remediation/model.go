package remediation

import (
	"encoding/json"
	"time"
)

// Action represents one gated remediation of a wasteful resource
type Action struct {
	ID                  string            `json:"id"`
	TenantID            string            `json:"tenant_id"`
	RecommendationID    *string           `json:"recommendation_id,omitempty"`
	ResourceID          string            `json:"resource_id"`
	ResourceType        string            `json:"resource_type"`
	Tags                map[string]string `json:"tags,omitempty"`
	ActionType          ActionType        `json:"action_type"`
	PolicyRoute         string            `json:"policy_route"`
	Status              ActionStatus      `json:"status"`
	EstimatedSavingsUSD float64           `json:"estimated_savings_usd"`
	SafetyVerdict       *string           `json:"safety_verdict,omitempty"`
	DenialCode          string            `json:"denial_code,omitempty"`
	Result              json.RawMessage   `json:"result,omitempty"`
	ErrorMessage        string            `json:"error_message,omitempty"`
	ApprovedBy          *int64            `json:"approved_by,omitempty"`
	ApprovedAt          *time.Time        `json:"approved_at,omitempty"`
	ExecutedAt          *time.Time        `json:"executed_at,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// ActionType represents what the remediation does to the resource
type ActionType string

const (
	ActionTypeStopOrTerminate    ActionType = "stop_or_terminate"
	ActionTypeSnapshotThenDelete ActionType = "snapshot_then_delete"
	ActionTypeArchiveThenDelete  ActionType = "archive_then_delete"
	ActionTypeRelease            ActionType = "release"
	ActionTypeDelete             ActionType = "delete"
	ActionTypeRightsize          ActionType = "rightsize"
	ActionTypeFlagForReview      ActionType = "flag_for_review"
)

// ActionStatus represents the lifecycle state of a remediation action
type ActionStatus string

const (
	ActionStatusPending  ActionStatus = "pending"
	ActionStatusApproved ActionStatus = "approved"
	ActionStatusApplied  ActionStatus = "applied"
	ActionStatusDenied   ActionStatus = "denied"
	ActionStatusFailed   ActionStatus = "failed"
)

// Result captures what a (simulated) execution did
type Result struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	DryRun      bool     `json:"dry_run"`
	ChangesMade []string `json:"changes_made,omitempty"`
	SavedUSD    float64  `json:"saved_usd"`
}

// Filter contains remediation action filtering options
type Filter struct {
	Status           ActionStatus
	ActionType       ActionType
	ResourceID       string
	RecommendationID string
	From             *time.Time
	To               *time.Time
}

// IsValid checks if the action type is valid
func (at ActionType) IsValid() bool {
	switch at {
	case ActionTypeStopOrTerminate, ActionTypeSnapshotThenDelete, ActionTypeArchiveThenDelete,
		ActionTypeRelease, ActionTypeDelete, ActionTypeRightsize, ActionTypeFlagForReview:
		return true
	default:
		return false
	}
}

// IsValid checks if the action status is valid
func (as ActionStatus) IsValid() bool {
	switch as {
	case ActionStatusPending, ActionStatusApproved, ActionStatusApplied,
		ActionStatusDenied, ActionStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal checks if the action status is terminal
func (as ActionStatus) IsTerminal() bool {
	return as == ActionStatusApplied || as == ActionStatusDenied || as == ActionStatusFailed
}

// RequiresApproval reports whether an action must be approved by an operator
// before execution. Manually-routed recommendations always need a human.
func RequiresApproval(policyRoute string) bool {
	return policyRoute != "auto_queue"
}
