package dto

import "time"

// TenantSettingsDTO is a tenant's effective safety settings
type TenantSettingsDTO struct {
	TenantID               string    `json:"tenantId"`
	KillSwitchThresholdUSD float64   `json:"killSwitchThresholdUsd"`
	KillSwitchScope        string    `json:"killSwitchScope"`
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
	KillSwitchThresholdUSD *float64 `json:"killSwitchThresholdUsd,omitempty" validate:"omitempty,gte=0"`
	KillSwitchScope        *string  `json:"killSwitchScope,omitempty" validate:"omitempty,oneof=tenant global"`
	MonthlyCapEnabled      *bool    `json:"monthlyCapEnabled,omitempty"`
	MonthlyCapUSD          *float64 `json:"monthlyCapUsd,omitempty" validate:"omitempty,gte=0"`
	FailureThreshold       *int     `json:"failureThreshold,omitempty" validate:"omitempty,gte=1"`
	RecoveryTimeoutSecs    *int     `json:"recoveryTimeoutSecs,omitempty" validate:"omitempty,gte=1"`
	MaxDailySavingsUSD     *float64 `json:"maxDailySavingsUsd,omitempty" validate:"omitempty,gte=0"`
	MinAgeEnabled          *bool    `json:"minAgeEnabled,omitempty"`
	MinAgeDays             *int     `json:"minAgeDays,omitempty" validate:"omitempty,gte=0"`
}
