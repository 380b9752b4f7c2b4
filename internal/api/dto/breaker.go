package dto

// BreakerStatusDTO is the operational snapshot of one tenant's circuit breaker
type BreakerStatusDTO struct {
	TenantID        string  `json:"tenantId"`
	State           string  `json:"state"`
	FailureCount    int64   `json:"failureCount"`
	DailySavingsUSD float64 `json:"dailySavingsUsd"`
	CanExecute      bool    `json:"canExecute"`
	LastError       string  `json:"lastError,omitempty"`
}
