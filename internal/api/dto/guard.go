package dto

// GuardCheckRequest dry-runs every guard against a hypothetical action
type GuardCheckRequest struct {
	EstimatedImpactUSD float64 `json:"estimatedImpactUsd" validate:"gte=0"`
}

// GuardCheckResponse reports whether the guards would allow the action
type GuardCheckResponse struct {
	Allowed    bool   `json:"allowed"`
	DenialCode string `json:"denialCode,omitempty"`
	Reason     string `json:"reason,omitempty"`
}
