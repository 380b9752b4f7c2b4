package tenant

import "time"

// Settings holds a tenant's safety thresholds. Zero values mean "use the
// installation default" and are resolved at read time by the service.
type Settings struct {
	TenantID               string    `json:"tenant_id"`
	KillSwitchThresholdUSD float64   `json:"kill_switch_threshold_usd"`
	KillSwitchScope        string    `json:"kill_switch_scope"`
	MonthlyCapEnabled      bool      `json:"monthly_cap_enabled"`
	MonthlyCapUSD          float64   `json:"monthly_cap_usd"`
	FailureThreshold       int       `json:"failure_threshold"`
	RecoveryTimeoutSecs    int       `json:"recovery_timeout_secs"`
	MaxDailySavingsUSD     float64   `json:"max_daily_savings_usd"`
	MinAgeEnabled          bool      `json:"min_age_enabled"`
	MinAgeDays             int       `json:"min_age_days"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// Kill-switch scopes
const (
	ScopeTenant = "tenant"
	ScopeGlobal = "global"
)

// ValidScope checks if a kill-switch scope value is valid
func ValidScope(s string) bool {
	return s == ScopeTenant || s == ScopeGlobal
}

// Update carries the settable fields of a PUT; nil means leave unchanged
type Update struct {
	KillSwitchThresholdUSD *float64 `json:"kill_switch_threshold_usd,omitempty"`
	KillSwitchScope        *string  `json:"kill_switch_scope,omitempty"`
	MonthlyCapEnabled      *bool    `json:"monthly_cap_enabled,omitempty"`
	MonthlyCapUSD          *float64 `json:"monthly_cap_usd,omitempty"`
	FailureThreshold       *int     `json:"failure_threshold,omitempty"`
	RecoveryTimeoutSecs    *int     `json:"recovery_timeout_secs,omitempty"`
	MaxDailySavingsUSD     *float64 `json:"max_daily_savings_usd,omitempty"`
	MinAgeEnabled          *bool    `json:"min_age_enabled,omitempty"`
	MinAgeDays             *int     `json:"min_age_days,omitempty"`
}
