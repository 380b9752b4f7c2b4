package dto

import "time"

// SafetyResourceDTO is the caller-supplied view of a candidate resource
type SafetyResourceDTO struct {
	ResourceID   string            `json:"resourceId" validate:"required"`
	ResourceType string            `json:"resourceType,omitempty"`
	Tags         map[string]string `json:"tags,omitempty"`
	CreatedAt    *time.Time        `json:"createdAt,omitempty"`
	AgeDays      *float64          `json:"ageDays,omitempty" validate:"omitempty,gte=0"`
}

// SafetyCheckRequest asks for ad-hoc verdicts on one or more resources
type SafetyCheckRequest struct {
	Resources []SafetyResourceDTO `json:"resources" validate:"required,min=1,dive"`
}

// SafetyVerdictDTO is the verdict for one checked resource
type SafetyVerdictDTO struct {
	ResourceID string `json:"resourceId"`
	IsSafe     bool   `json:"isSafe"`
	Reason     string `json:"reason,omitempty"`
}

// SafetyCheckResponse carries per-resource verdicts
type SafetyCheckResponse struct {
	Verdicts []SafetyVerdictDTO `json:"verdicts"`
}

// SafetyFilterResponse returns the subset of submitted resources that passed
type SafetyFilterResponse struct {
	Safe     []SafetyResourceDTO `json:"safe"`
	Excluded int                 `json:"excluded"`
}
