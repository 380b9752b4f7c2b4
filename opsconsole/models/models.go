package models

import "time"

// ---- Profile ----

type Profile struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"fullName,omitempty"`
	TenantID string  `json:"tenantId"`
	Role     string  `json:"role"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"fullName"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ---- Notification channels ----

type ChannelSettings struct {
	Channel    string  `json:"channel"`
	IsEnabled  bool    `json:"isEnabled"`
	WebhookURL *string `json:"webhookUrl,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type UpdateChannelRequest struct {
	IsEnabled  *bool   `json:"isEnabled"`
	WebhookURL *string `json:"webhookUrl"`
}

// ---- Guard presets ----

// GuardPreset is a named bundle of budget thresholds an operator can apply
// to a tenant in one step.
type GuardPreset struct {
	Name                   string    `json:"name"`
	KillSwitchThresholdUSD float64   `json:"killSwitchThresholdUsd"`
	MonthlyCapEnabled      bool      `json:"monthlyCapEnabled"`
	MonthlyCapUSD          float64   `json:"monthlyCapUsd"`
	MaxDailySavingsUSD     float64   `json:"maxDailySavingsUsd"`
	CreatedAt              time.Time `json:"createdAt"`
}

type CreatePresetRequest struct {
	Name                   string  `json:"name"`
	KillSwitchThresholdUSD float64 `json:"killSwitchThresholdUsd"`
	MonthlyCapEnabled      bool    `json:"monthlyCapEnabled"`
	MonthlyCapUSD          float64 `json:"monthlyCapUsd"`
	MaxDailySavingsUSD     float64 `json:"maxDailySavingsUsd"`
}

// ---- Safety toggles ----

type SafetyToggles struct {
	MinAgeEnabled bool `json:"minAgeEnabled"`
	MinAgeDays    int  `json:"minAgeDays"`
}

type UpdateSafetyTogglesRequest struct {
	MinAgeEnabled *bool `json:"minAgeEnabled"`
	MinAgeDays    *int  `json:"minAgeDays"`
}

// ---- API keys ----

type APIKey struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateAPIKeyRequest struct {
	Name string `json:"name"`
}

type CreateAPIKeyResponse struct {
	Key    APIKey `json:"key"`
	Secret string `json:"secret"`
}
