package spend

import "time"

// SavingsRecord is one realized savings entry in the ledger, written when a
// remediation action is applied.
type SavingsRecord struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	ActionID   *string   `json:"action_id,omitempty"`
	ResourceID string    `json:"resource_id,omitempty"`
	AmountUSD  float64   `json:"amount_usd"`
	RealizedOn time.Time `json:"realized_on"`
	CreatedAt  time.Time `json:"created_at"`
}

// CostRecord is one observed spend entry for a tenant, ingested from billing
// exports. The monthly hard cap aggregates these.
type CostRecord struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Provider    string    `json:"provider,omitempty"`
	ServiceName string    `json:"service_name,omitempty"`
	AmountUSD   float64   `json:"amount_usd"`
	Currency    string    `json:"currency"`
	IncurredOn  time.Time `json:"incurred_on"`
	CreatedAt   time.Time `json:"created_at"`
}

// DailyReport summarizes one UTC day of realized savings
type DailyReport struct {
	TenantID string    `json:"tenant_id"`
	Day      time.Time `json:"day"`
	TotalUSD float64   `json:"total_usd"`
	Records  int       `json:"records"`
}

// MonthlyReport summarizes one calendar month of savings against spend
type MonthlyReport struct {
	TenantID   string  `json:"tenant_id"`
	Month      string  `json:"month"`
	SavingsUSD float64 `json:"savings_usd"`
	CostUSD    float64 `json:"cost_usd"`
}
